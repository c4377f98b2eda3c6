package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResponseSchema returns the JSON-Schema (draft 2020-12 subset) an OCR
// endpoint's reply must satisfy: an optional pre-segmented item list and an
// optional raw text block. Which of the two is usable is decided later by the
// parse package, not here.
func BuildResponseSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"required":             []string{"name", "quantity", "price", "subtotal"},
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"quantity": map[string]any{"type": "number", "minimum": 0.0},
			"price":    map[string]any{"type": "number", "minimum": 0.0},
			"subtotal": map[string]any{"type": "number"},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{"type": "array", "items": item},
			"text":  map[string]any{"type": "string"},
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
