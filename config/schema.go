package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for spoolview.yml.
// Extensions are allowed as additional top-level properties.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	type BaseConfig struct {
		Name       string         `yaml:"name,omitempty" jsonschema:"description=Name of the viewer profile"`
		Version    string         `yaml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
		Catalog    CatalogConfig  `yaml:"catalog,omitempty" jsonschema:"description=Element catalog settings"`
		Viewport   ViewportConfig `yaml:"viewport,omitempty" jsonschema:"description=Viewport settings"`
		Spools     []string       `yaml:"spools,omitempty" jsonschema:"description=Spools checked when a document opens"`
		SpoolsFile string         `yaml:"spools_file,omitempty" jsonschema:"description=File listing spools to keep checked"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "spoolview configuration"
	schema.Description = "Schema for spoolview.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
