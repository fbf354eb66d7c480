package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/paygrid/paygrid/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// recordSchema validates raw catalog payloads before they are trusted as
// resource references. Price is a smallest-unit integer; divide by 1,000,000
// for the decimal currency amount.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "name", "price_micro"},
	"properties": map[string]any{
		"id":          map[string]any{"type": "string", "minLength": 1},
		"name":        map[string]any{"type": "string", "minLength": 1},
		"price_micro": map[string]any{"type": "integer", "minimum": 0},
		"avatar":      map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"body":   fieldListSchema,
				"query":  fieldListSchema,
				"header": fieldListSchema,
				"prompt_params": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"name"},
						"properties": map[string]any{
							"name":        map[string]any{"type": "string", "minLength": 1},
							"required":    map[string]any{"type": "boolean"},
							"description": map[string]any{"type": "string"},
							"default":     map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

var fieldListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name":     map[string]any{"type": "string", "minLength": 1},
			"type":     map[string]any{"type": "string"},
			"required": map[string]any{"type": "boolean"},
		},
	},
}

// ParseRecord validates a raw catalog payload against the record schema and
// decodes it into a resource reference.
func ParseRecord(payload []byte) (*models.ResourceRef, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(recordSchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate catalog record: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return nil, errors.New("invalid catalog record: " + strings.Join(details, "; "))
	}

	var ref models.ResourceRef

	err = json.Unmarshal(payload, &ref)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog record: %w", err)
	}

	return &ref, nil
}
