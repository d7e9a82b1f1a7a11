// Package config loads Raven's optional project configuration file,
// raven.yaml, read once at process start (spec.md §6.5, SPEC_FULL.md
// §4.6.a).
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the project-level configuration Raven reads from
// raven.yaml at the working directory, if present.
type Config struct {
	// ModulePaths are extra directories searched for `import`ed modules,
	// after the importing file's own directory and RAVEN_PATH (spec.md
	// §6.4, step 3).
	ModulePaths []string `yaml:"module_paths"`

	// Verbose is read from raven.yaml; the CLI driver does not consult it.
	Verbose bool `yaml:"verbose"`
}

// Load reads raven.yaml from path. A missing file is not an error — it
// returns a zero-value Config, since raven.yaml is entirely optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
