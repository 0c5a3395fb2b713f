package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// Default values applied by SetDefaults.
const (
	DefaultVersion        = "1.0"
	DefaultGroupAttribute = "spool"
	DefaultSettleDelay    = 500 * time.Millisecond
	DefaultPickOffset     = 8.0
)

// DefaultCategories lists the element classes that carry the spool attribute.
var DefaultCategories = []string{"P3DPipe", "P3DPipeInstrument", "P3DPipingComponent"}

// CatalogConfig locates the element catalog and describes how spools are stored in it.
type CatalogConfig struct {
	Path           string   `yaml:"path,omitempty" toml:"path,omitempty" jsonschema:"description=Path to the SQLite element catalog"`
	Categories     []string `yaml:"categories,omitempty" toml:"categories,omitempty" jsonschema:"description=Element classes carrying the group attribute"`
	GroupAttribute string   `yaml:"group_attribute,omitempty" toml:"group_attribute,omitempty" jsonschema:"description=Column holding the spool id (default: spool)"`
}

// ViewportConfig tunes viewport interaction.
type ViewportConfig struct {
	SettleDelay string   `yaml:"settle_delay,omitempty" toml:"settle_delay,omitempty" jsonschema:"description=Wait before the first zoom after a view opens (default: 500ms)"`
	PickOffset  *float64 `yaml:"pick_offset,omitempty" toml:"pick_offset,omitempty" jsonschema:"description=Popup offset up-left of the pointer in cells (default: 8)"`
}

// Config represents the spoolview.yml configuration
type Config struct {
	Name       string         `yaml:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Name of the viewer profile"`
	Version    string         `yaml:"version" toml:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Catalog    CatalogConfig  `yaml:"catalog,omitempty" toml:"catalog,omitempty" jsonschema:"description=Element catalog settings"`
	Viewport   ViewportConfig `yaml:"viewport,omitempty" toml:"viewport,omitempty" jsonschema:"description=Viewport settings"`
	Spools     []string       `yaml:"spools,omitempty" toml:"spools,omitempty" jsonschema:"description=Spools checked when a document opens"`
	SpoolsFile string         `yaml:"spools_file,omitempty" toml:"spools_file,omitempty" jsonschema:"description=File listing spools to keep checked; watched for changes"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// knownKeys are the top-level keys decoded into typed fields.
var knownKeys = map[string]bool{
	"name":        true,
	"version":     true,
	"catalog":     true,
	"viewport":    true,
	"spools":      true,
	"spools_file": true,
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if len(c.Catalog.Categories) == 0 {
		c.Catalog.Categories = append([]string(nil), DefaultCategories...)
	}
	if c.Catalog.GroupAttribute == "" {
		c.Catalog.GroupAttribute = DefaultGroupAttribute
	}
	if c.Viewport.SettleDelay == "" {
		c.Viewport.SettleDelay = DefaultSettleDelay.String()
	}
	if c.Viewport.PickOffset == nil {
		offset := DefaultPickOffset
		c.Viewport.PickOffset = &offset
	}
}

// SettleDelay returns the parsed viewport settle delay.
func (c *Config) SettleDelay() time.Duration {
	d, err := time.ParseDuration(c.Viewport.SettleDelay)
	if err != nil {
		return DefaultSettleDelay
	}
	return d
}

// PickOffset returns the popup offset, falling back to the default.
func (c *Config) PickOffset() float64 {
	if c.Viewport.PickOffset == nil {
		return DefaultPickOffset
	}
	return *c.Viewport.PickOffset
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded spoolview.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceGlobal   ConfigSource = "global"
	SourceProject  ConfigSource = "project"
	SourceOverride ConfigSource = "override"
)

// OverrideSource holds a raw configuration from an override file and its path.
type OverrideSource struct {
	Path   string
	Config *Config
}

// LayeredConfig holds the raw configuration from each source file,
// as well as the final merged configuration, for analysis purposes.
type LayeredConfig struct {
	Default   *Config
	Global    *Config
	Project   *Config
	Overrides []OverrideSource
	Final     *Config
	FilePaths map[ConfigSource]string
}
