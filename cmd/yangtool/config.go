package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// config describes what to load before handling data files. It can
// come from flags, a YAML file, or both merged.
type config struct {
	SearchPaths []string       `yaml:"search-paths"`
	Modules     []moduleConfig `yaml:"modules"`
}

type moduleConfig struct {
	Name     string   `yaml:"name"`
	Revision string   `yaml:"revision"`
	Features []string `yaml:"features"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	for _, mod := range cfg.Modules {
		if mod.Name == "" {
			return nil, fmt.Errorf("config %s: module without a name", path)
		}
	}
	return &cfg, nil
}

func (c *config) merge(other *config) {
	c.SearchPaths = append(c.SearchPaths, other.SearchPaths...)
	c.Modules = append(c.Modules, other.Modules...)
}

// addFeatures attaches features to an already listed module, or adds
// the module when it is not listed yet.
func (c *config) addFeatures(module string, features []string) {
	for i := range c.Modules {
		if c.Modules[i].Name == module {
			c.Modules[i].Features = append(c.Modules[i].Features, features...)
			return
		}
	}
	c.Modules = append(c.Modules, moduleConfig{Name: module, Features: features})
}
