// Package registry owns persisted compiled signatures. It is the layer
// that duplicates and destroys compiled type metadata, so it carries the
// refcount discipline: Clone adds references, Remove releases exactly
// once. Declarations come from a YAML signatures file or from a SQLite
// cache of previously compiled declarations.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level signatures.yaml file.
type Config struct {
	// Functions lists the declared call signatures.
	Functions []FunctionDecl `yaml:"functions"`
}

// FunctionDecl is one declared function signature, types as source text.
type FunctionDecl struct {
	// Name is the owner name used in diagnostics (e.g. "Point::move").
	Name string `yaml:"name"`

	// Params lists the declared parameters in positional order.
	Params []ParamDecl `yaml:"params,omitempty"`

	// Return is the declared return type expression. Empty means
	// undeclared, which checks nothing.
	Return string `yaml:"return,omitempty"`
}

// ParamDecl declares one parameter.
type ParamDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Optional marks a parameter that may be omitted at the call site.
	Optional bool `yaml:"optional,omitempty"`
}

// LoadConfig reads and parses a signatures.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signatures %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses signatures.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	seen := make(map[string]bool, len(c.Functions))
	for i, fn := range c.Functions {
		if fn.Name == "" {
			return fmt.Errorf("%s: functions[%d]: missing name", path, i)
		}
		if seen[fn.Name] {
			return fmt.Errorf("%s: duplicate function %q", path, fn.Name)
		}
		seen[fn.Name] = true

		names := make(map[string]bool, len(fn.Params))
		for j, p := range fn.Params {
			if p.Name == "" {
				return fmt.Errorf("%s: %s: params[%d]: missing name", path, fn.Name, j)
			}
			if p.Type == "" {
				return fmt.Errorf("%s: %s: param %q: missing type", path, fn.Name, p.Name)
			}
			if names[p.Name] {
				return fmt.Errorf("%s: %s: duplicate param %q", path, fn.Name, p.Name)
			}
			names[p.Name] = true
		}
	}
	return nil
}
