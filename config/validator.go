package config

import (
	"github.com/hooktools/core/schema"
)

// SchemaValidator validates configuration documents against the embedded
// JSON Schema. This is a thin wrapper around schema.Validator so callers of
// the config package do not need to know about the schema package.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a new schema validator, loading the embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
