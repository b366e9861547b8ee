// Package config loads the graft.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graft-dev/graft/internal/augment"
)

// Config represents the graft.json configuration file.
type Config struct {
	Name    string        `json:"name"`
	Schema  string        `json:"schema"`
	Output  string        `json:"output"`
	Augment AugmentConfig `json:"augment"`
	Dev     DevConfig     `json:"dev"`
}

// AugmentConfig contains the generation policy. Each operation toggle accepts
// either a bare boolean or an object with an exclusion list; temporal accepts
// a bare boolean or a per-kind map.
type AugmentConfig struct {
	Query    OperationToggle `json:"query"`
	Mutation OperationToggle `json:"mutation"`
	Temporal TemporalToggle  `json:"temporal"`
	Debug    bool            `json:"debug"`
}

// DevConfig contains dev-loop configuration.
type DevConfig struct {
	Watch   []string `json:"watch"`
	Exclude []string `json:"exclude"`
}

// OperationToggle is a bool-or-object JSON value: `true`, `false`, or
// `{"exclude": ["Type", ...]}` (which implies enabled).
type OperationToggle struct {
	Enabled bool
	Exclude []string
}

func (t *OperationToggle) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		t.Enabled = b
		t.Exclude = nil
		return nil
	}
	var obj struct {
		Exclude []string `json:"exclude"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("operation toggle must be a boolean or {\"exclude\": [...]}: %w", err)
	}
	t.Enabled = true
	t.Exclude = obj.Exclude
	return nil
}

func (t OperationToggle) MarshalJSON() ([]byte, error) {
	if len(t.Exclude) == 0 {
		return json.Marshal(t.Enabled)
	}
	return json.Marshal(struct {
		Exclude []string `json:"exclude"`
	}{Exclude: t.Exclude})
}

// Policy converts the toggle to the engine's policy form.
func (t OperationToggle) Policy() augment.Policy {
	p := augment.Policy{Enabled: t.Enabled, Exclude: map[string]bool{}}
	for _, name := range t.Exclude {
		p.Exclude[name] = true
	}
	return p
}

// TemporalToggle is a bool-or-map JSON value: `true`, `false`, or a per-kind
// map like {"date": true, "datetime": true}.
type TemporalToggle struct {
	set   bool
	all   bool
	kinds map[string]bool
}

func (t *TemporalToggle) UnmarshalJSON(data []byte) error {
	t.set = true
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		t.all = b
		t.kinds = nil
		return nil
	}
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("temporal toggle must be a boolean or a kind map: %w", err)
	}
	t.kinds = m
	return nil
}

func (t TemporalToggle) MarshalJSON() ([]byte, error) {
	if t.kinds != nil {
		return json.Marshal(t.kinds)
	}
	if !t.set {
		return json.Marshal(true)
	}
	return json.Marshal(t.all)
}

// Kinds converts the toggle to the engine's per-kind map. Nil means every
// kind is enabled.
func (t TemporalToggle) Kinds() map[string]bool {
	if !t.set {
		return nil
	}
	if t.kinds != nil {
		return t.kinds
	}
	if t.all {
		return nil
	}
	return map[string]bool{}
}

// EngineConfig builds the engine configuration from the policy block.
func (c *Config) EngineConfig() augment.Config {
	cfg := augment.DefaultConfig()
	cfg.Query = c.Augment.Query.Policy()
	cfg.Mutation = c.Augment.Mutation.Policy()
	cfg.Temporal = c.Augment.Temporal.Kinds()
	cfg.Debug = c.Augment.Debug
	return cfg
}

// LoadConfig loads graft.json from the current directory or a parent
// directory, returning the config and the project root it was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific file path.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	config.Augment.Query = OperationToggle{Enabled: true}
	config.Augment.Mutation = OperationToggle{Enabled: true}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Defaults
	if config.Schema == "" {
		config.Schema = "./schema.graphql"
	}
	if config.Output == "" {
		config.Output = "./augmented.graphql"
	}
	if len(config.Dev.Watch) == 0 {
		config.Dev.Watch = []string{"*.graphql", "**/*.graphql", "graft.json"}
	}
	if len(config.Dev.Exclude) == 0 {
		// Exclusions match basenames, so the output path reduces to its file
		// name. Watching the output would retrigger regeneration forever.
		config.Dev.Exclude = []string{filepath.Base(filepath.Clean(config.Output)), ".git"}
	}

	return &config, nil
}

// loadConfigFromDir searches for graft.json in the given directory and its
// parents.
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "graft.json")
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no graft.json found in %s or any parent directory", startDir)
}
