package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"alphabeta/communication"
)

type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient returns a client for the agent server at serverURL. A nil
// httpClient uses http.DefaultClient.
func NewClient(serverURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		serverURL:  serverURL,
		httpClient: httpClient,
	}
}

func (c *Client) FindMove(ctx context.Context, request communication.FindMoveRequest) (communication.FindMoveResponse, error) {
	var response communication.FindMoveResponse

	data, err := json.Marshal(request)
	if err != nil {
		return response, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/findmove", bytes.NewReader(data))
	if err != nil {
		return response, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	err = c.do(req, &response)
	return response, err
}

func (c *Client) Health(ctx context.Context) (communication.HealthResponse, error) {
	var response communication.HealthResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/healthz", nil)
	if err != nil {
		return response, fmt.Errorf("failed to create request: %w", err)
	}

	err = c.do(req, &response)
	return response, err
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure communication.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil || failure.Error == "" {
			return fmt.Errorf("agent server responded %s", resp.Status)
		}
		return fmt.Errorf("agent server responded %s: %s", resp.Status, failure.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
