package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/publicizer/logging"
	"github.com/viant/publicizer/publicizer"
	"gopkg.in/yaml.v3"
)

// Config represents publicizer configuration
type Config struct {
	PackageName               string          `yaml:"packageName" toml:"packageName"`                             // Package reference identity selecting the target
	AssemblyMetadata          string          `yaml:"assemblyMetadata" toml:"assemblyMetadata"`                   // Package reference metadata holding target path
	ReferenceAssemblyMetadata string          `yaml:"referenceAssemblyMetadata" toml:"referenceAssemblyMetadata"` // Metadata removed from the output reference
	OutputName                string          `yaml:"outputName" toml:"outputName"`                               // Rewritten artifact file name
	MaskResource              string          `yaml:"maskResource" toml:"maskResource"`                           // Mask resource name
	MaskLocation              string          `yaml:"maskLocation" toml:"maskLocation"`                           // Mask binary URL
	Exceptions                []ExceptionRule `yaml:"exceptions" toml:"exceptions"`
	Logging                   logging.Config  `yaml:"logging" toml:"logging"`
}

// ExceptionRule marks a publicized member obsolete
type ExceptionRule struct {
	Type   string `yaml:"type" toml:"type"`
	Member string `yaml:"member" toml:"member"`
	Reason string `yaml:"reason" toml:"reason"`
	Error  bool   `yaml:"error" toml:"error"`
}

// New creates a config with default values
func New() *Config {
	return &Config{
		PackageName:               DefaultPackageName,
		AssemblyMetadata:          DefaultAssemblyMetadata,
		ReferenceAssemblyMetadata: DefaultReferenceAssemblyMetadata,
		OutputName:                DefaultOutputName,
		MaskResource:              DefaultMaskResource,
		Logging:                   logging.DefaultConfig(),
	}
}

// Load loads configuration file on top of defaults
func Load(path string) (*Config, error) {
	cfg := New()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from a file (YAML or TOML based on extension)
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			if _, err := toml.Decode(string(data), c); err != nil {
				return fmt.Errorf("unable to parse config as YAML or TOML")
			}
		}
	}
	return nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"packageName", c.PackageName},
		{"assemblyMetadata", c.AssemblyMetadata},
		{"outputName", c.OutputName},
		{"maskResource", c.MaskResource},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return fmt.Errorf("%v was empty", item.name)
		}
	}
	if strings.ContainsAny(c.OutputName, `/\`) {
		return fmt.Errorf("outputName %q must be a file name", c.OutputName)
	}
	for i, rule := range c.Exceptions {
		if rule.Type == "" || rule.Member == "" || rule.Reason == "" {
			return fmt.Errorf("exceptions[%d]: type, member and reason are required", i)
		}
	}
	return nil
}

// ExceptionTable converts exception rules to the table consulted while publicizing
func (c *Config) ExceptionTable() publicizer.ExceptionTable {
	table := publicizer.ExceptionTable{}
	for _, rule := range c.Exceptions {
		severity := publicizer.SeverityWarning
		if rule.Error {
			severity = publicizer.SeverityError
		}
		table.Add(publicizer.TypeIdentity(rule.Type), rule.Member, publicizer.Exception{
			Reason:   rule.Reason,
			Severity: severity,
		})
	}
	return table
}
