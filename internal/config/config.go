// Package config handles loading, validation, and merging of xunitmerge
// configuration files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/drew/xunitmerge/internal/xmlout"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config path is given
const DefaultConfigFile = "xunitmerge.toml"

// Config represents the complete xunitmerge configuration
type Config struct {
	CDATA      CDATAConfig      `toml:"cdata"`
	Transforms TransformsConfig `toml:"transforms"`
	Output     OutputConfig     `toml:"output"`
}

// CDATAConfig controls which tags keep their text as raw CDATA
type CDATAConfig struct {
	// Tags whose text is written inside <![CDATA[...]]> (default:
	// system-out, system-err, skipped, error, failure)
	Tags []string `toml:"tags"`
}

// TransformsConfig enables post-merge rewrites of the merged tree
type TransformsConfig struct {
	// Remove ANSI escape sequences from captured output tags
	StripANSI bool `toml:"strip_ansi"`
}

// OutputConfig controls serialization of the merged report
type OutputConfig struct {
	// Write the XML declaration header (default true)
	Declaration *bool `toml:"declaration"`
}

// LoadConfig loads configuration from the given path. An empty path falls
// back to xunitmerge.toml in the working directory; if that default file
// does not exist, (nil, nil) is returned and the caller uses defaults. An
// explicitly specified file that is missing or invalid is an error.
func LoadConfig(path string) (*Config, error) {
	explicitPath := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicitPath {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, nil
	}

	var cfg Config
	metadata, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Check for unknown fields
	undecoded := metadata.Undecoded()
	if len(undecoded) > 0 {
		var unknownFields []string
		for _, key := range undecoded {
			unknownFields = append(unknownFields, key.String())
		}
		return nil, fmt.Errorf("unknown fields in config: %s", strings.Join(unknownFields, ", "))
	}

	for _, tag := range cfg.CDATA.Tags {
		if strings.TrimSpace(tag) == "" {
			return nil, fmt.Errorf("cdata.tags contains an empty tag name")
		}
	}

	return &cfg, nil
}

// GetDefaults returns the default configuration
func GetDefaults() Config {
	return Config{
		CDATA: CDATAConfig{
			Tags: append([]string(nil), xmlout.DefaultCDATATags...),
		},
		Output: OutputConfig{
			Declaration: boolPtr(true),
		},
	}
}

// MergeWithDefaults merges loaded config with defaults
func MergeWithDefaults(cfg *Config) Config {
	defaults := GetDefaults()

	if cfg == nil {
		return defaults
	}

	if len(cfg.CDATA.Tags) == 0 {
		cfg.CDATA.Tags = defaults.CDATA.Tags
	}
	if cfg.Output.Declaration == nil {
		cfg.Output.Declaration = defaults.Output.Declaration
	}

	return *cfg
}

func boolPtr(b bool) *bool {
	return &b
}
