package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// config is the contents of a config file. Flags override it.
type config struct {
	// Format is the fmt verb for results.
	Format string `yaml:"format"`
	// Prompt is printed before reading each line in the shell.
	Prompt string `yaml:"prompt"`
	// Vars are evaluated in order before anything else, so each may refer to
	// the ones before it.
	Vars []variable `yaml:"vars"`
}

type variable struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

func defaultConfig() config {
	return config{Format: "%g", Prompt: "> "}
}

func loadConfig(name string) (config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return config{}, errors.Wrap(err, "reading config")
	}
	cfg, err := parseConfig(b)
	if err != nil {
		return config{}, errors.Wrapf(err, "parsing config %s", name)
	}
	return cfg, nil
}

// parseConfig decodes a config. Settings the document leaves out keep their
// defaults.
func parseConfig(b []byte) (config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return config{}, err
	}
	for i, v := range cfg.Vars {
		if v.Name == "" {
			return config{}, errors.Errorf("var %d has no name", i+1)
		}
	}
	return cfg, nil
}

func (cfg *config) define(c *calc.Calculator) error {
	for _, v := range cfg.Vars {
		x, err := c.Eval(v.Expr)
		if err != nil {
			return errors.Wrapf(err, "setting %s", v.Name)
		}
		c.Define(v.Name, x)
	}
	return nil
}
