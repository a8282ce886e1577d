package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rangel3l/sem-colar-system/model"
)

// fileConfig is the optional YAML configuration file. Every field has a
// flag counterpart; flags win when both are set.
type fileConfig struct {
	Output   string   `yaml:"output"`
	Versions []string `yaml:"versions"`
	Seed     *int64   `yaml:"seed"`
	Title    string   `yaml:"title"`

	Header struct {
		Teacher        string `yaml:"teacher"`
		Subject        string `yaml:"subject"`
		Class          string `yaml:"class"`
		EvaluationType string `yaml:"evaluation_type"`
		Image          string `yaml:"image"`
	} `yaml:"header"`

	Shuffle struct {
		Questions    *bool `yaml:"questions"`
		Alternatives *bool `yaml:"alternatives"`
	} `yaml:"shuffle"`

	Rewrite struct {
		APIKey           string `yaml:"api_key"`
		Model            string `yaml:"model"`
		FallbackOriginal bool   `yaml:"fallback_original"`
	} `yaml:"rewrite"`
}

func loadConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func (c *fileConfig) overrides() model.Overrides {
	return model.Overrides{
		Teacher:        c.Header.Teacher,
		Subject:        c.Header.Subject,
		ClassLabel:     c.Header.Class,
		EvaluationType: c.Header.EvaluationType,
		HeaderImage:    c.Header.Image,
	}
}
