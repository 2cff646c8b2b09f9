package typesense

import (
	"fmt"

	"github.com/AvivoB/N8N-nodes/pkg/errors"
)

// ValidateCollectionSchema checks the shape Typesense requires before a
// collection is created: a non-empty string name and a list of fields that
// each carry a name and a type. Type values are left to the server.
func ValidateCollectionSchema(schema any) error {
	m, ok := schema.(map[string]any)
	if !ok {
		return &errors.ValidationError{
			Field:   "name",
			Message: "Collection name is required and must be a string",
		}
	}

	if name, ok := m["name"].(string); !ok || name == "" {
		return &errors.ValidationError{
			Field:   "name",
			Message: "Collection name is required and must be a string",
		}
	}

	fields, ok := m["fields"].([]any)
	if !ok {
		return &errors.ValidationError{
			Field:   "fields",
			Message: "Collection fields are required and must be an array",
		}
	}

	for i, f := range fields {
		field, _ := f.(map[string]any)
		if !nonEmpty(field["name"]) || !nonEmpty(field["type"]) {
			return &errors.ValidationError{
				Field:       fmt.Sprintf("fields[%d]", i),
				Message:     "Each field must have a name and type",
				SuggestText: `Fields look like {"name": "title", "type": "string"}`,
			}
		}
	}

	return nil
}

func nonEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	default:
		return true
	}
}
