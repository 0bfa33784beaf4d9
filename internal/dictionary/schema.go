package dictionary

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateJSON validates the JSON form of a dictionary against the bundled schema.
func ValidateJSON(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	out := &ValidationError{}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, FieldError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return out
}

// ValidateSchema encodes d as JSON and validates it against the bundled schema.
func (d *Dictionary) ValidateSchema() error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}
	return ValidateJSON(data)
}
