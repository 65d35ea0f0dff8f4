package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/internal/util"
	"gopkg.in/yaml.v3"
)

// CLI verbosity values accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultRootSDDL is empty so the root descriptor is derived from the
	// identity of the running process
	DefaultRootSDDL = ""
	// DefaultRootSupplier is empty so the supplier is picked from RootSDDL
	DefaultRootSupplier = ""

	DefaultFileAttributes = memns.AttrArchive
	DefaultDirAttributes  = memns.AttrDirectory
)

// Config contains runtime configuration values for the namespace.
type Config struct {
	LogLvl util.LogLevel // Global log level (Default info)
	// RootSDDL overrides the root security descriptor; empty derives it
	// from the process identity (Default "")
	RootSDDL              string
	RootSupplier          string           // Registered descriptor supplier kind, e.g. "static" or "process" (Default "")
	DefaultFileAttributes memns.Attributes // Attributes for file/stream definitions without any (Default archive)
	DefaultDirAttributes  memns.Attributes // Attributes for directory definitions without any (Default directory)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	// LogLvl is a CLI style verbosity between 1 (error) and 5 (trace)
	LogLvl                *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	RootSDDL              *string `yaml:"root_sddl,omitempty" json:"root_sddl,omitempty"`
	RootSupplier          *string `yaml:"root_supplier,omitempty" json:"root_supplier,omitempty"`
	DefaultFileAttributes *uint32 `yaml:"default_file_attributes,omitempty" json:"default_file_attributes,omitempty"`
	DefaultDirAttributes  *uint32 `yaml:"default_dir_attributes,omitempty" json:"default_dir_attributes,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:                DefaultLogLvl,
		RootSDDL:              DefaultRootSDDL,
		RootSupplier:          DefaultRootSupplier,
		DefaultFileAttributes: DefaultFileAttributes,
		DefaultDirAttributes:  DefaultDirAttributes,
	}
}

// NewConfig creates a default Config with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.LogLvl)
	}
	if override.RootSDDL != nil {
		c.RootSDDL = *override.RootSDDL
	}
	if override.RootSupplier != nil {
		c.RootSupplier = *override.RootSupplier
	}
	if override.DefaultFileAttributes != nil {
		c.DefaultFileAttributes = memns.Attributes(*override.DefaultFileAttributes)
	}
	if override.DefaultDirAttributes != nil {
		// directories always carry the directory flag
		c.DefaultDirAttributes = memns.Attributes(*override.DefaultDirAttributes) | memns.AttrDirectory
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
