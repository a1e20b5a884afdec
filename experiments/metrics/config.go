package metrics

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	KindSearch = "search"
	KindRandom = "random"
	KindRemote = "remote"
)

type AgentConfig struct {
	ID         int           `yaml:"id"`
	Kind       string        `yaml:"kind"`
	Depth      int           `yaml:"depth,omitempty"`      // 0 uses the engine default
	Duration   time.Duration `yaml:"duration,omitempty"`   // Time budget per move, 0 means none
	Evaluation string        `yaml:"evaluation,omitempty"` // Scorer name, neutral by default
	Seed       uint64        `yaml:"seed,omitempty"`
	URL        string        `yaml:"url,omitempty"` // Agent server of a remote agent
}

type MatchUp struct {
	Agent1 int `yaml:"agent1"` // AgentConfig.ID
	Agent2 int `yaml:"agent2"` // AgentConfig.ID
}

type ExperimentConfig struct {
	Name      string        `yaml:"name"`
	Games     int           `yaml:"games"`  // Per match up
	Length    int           `yaml:"length"` // Units on the line at the start
	OutputDir string        `yaml:"output"`
	Agents    []AgentConfig `yaml:"agents"`
	MatchUps  []MatchUp     `yaml:"matchups"`
}

func LoadConfig(path string) (ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExperimentConfig{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (ExperimentConfig, error) {
	var config ExperimentConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse experiment config: %w", err)
	}
	if config.OutputDir == "" {
		config.OutputDir = "experiments"
	}
	return config, config.Validate()
}

// Agent returns the agent config with the given id.
func (c ExperimentConfig) Agent(id int) (AgentConfig, bool) {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent, true
		}
	}
	return AgentConfig{}, false
}

func (c ExperimentConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games %d is less than 1", c.Games))
	}
	if c.Length < 1 {
		errs = append(errs, fmt.Errorf("length %d is less than 1", c.Length))
	}

	ids := map[int]bool{}
	for _, agent := range c.Agents {
		if ids[agent.ID] {
			errs = append(errs, fmt.Errorf("agent %d is defined twice", agent.ID))
		}
		ids[agent.ID] = true

		switch agent.Kind {
		case KindSearch, KindRandom:
		case KindRemote:
			if agent.URL == "" {
				errs = append(errs, fmt.Errorf("remote agent %d has no url", agent.ID))
			}
		default:
			errs = append(errs, fmt.Errorf("agent %d has unknown kind %q", agent.ID, agent.Kind))
		}
		if agent.Depth < 0 {
			errs = append(errs, fmt.Errorf("agent %d has negative depth %d", agent.ID, agent.Depth))
		}
	}

	if len(c.MatchUps) == 0 {
		errs = append(errs, errors.New("no match ups"))
	}
	for _, m := range c.MatchUps {
		for _, id := range []int{m.Agent1, m.Agent2} {
			if !ids[id] {
				errs = append(errs, fmt.Errorf("match up refers to unknown agent %d", id))
			}
		}
	}
	return errors.Join(errs...)
}
