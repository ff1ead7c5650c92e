package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the pre-commit configuration
// document by reflecting the Config struct. The result is embedded into the
// schema package by tools/schema-generator.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// The document schema is closed: unknown top-level keys are typos.
		AllowAdditionalProperties: false,
		// Expand the root struct instead of hiding it behind a $ref.
		ExpandedStruct: true,
		// Property names come from the YAML field names.
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Pre-commit configuration"
	schema.Description = "Schema for .pre-commit-config.yaml documents."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
