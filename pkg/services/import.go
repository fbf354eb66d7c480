package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/paygrid/paygrid/pkg/models"
)

// jobImportSchema validates raw job graph documents before they are
// unmarshaled. Imports arrive from exported files and third-party tools, so
// a malformed document must be rejected with a field-level message instead
// of a decode panic downstream.
var jobImportSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "nodes"},
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"nodes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "type"},
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"trigger", "resource", "transform", "source", "output"},
					},
					"name":       map[string]any{"type": "string"},
					"position_x": map[string]any{"type": "integer"},
					"position_y": map[string]any{"type": "integer"},
				},
			},
		},
		"edges": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"source", "target"},
				"properties": map[string]any{
					"id":     map[string]any{"type": "string"},
					"source": map[string]any{"type": "string", "minLength": 1},
					"target": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
}

// Import validates a raw job graph document, unmarshals it and persists it
// as a new job owned by owner. The imported document's ID and timestamps
// are discarded; the stored job gets fresh ones.
func (s *Job) Import(ctx context.Context, raw []byte, owner string) (*models.Job, error) {
	schemaLoader := gojsonschema.NewGoLoader(jobImportSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, NewValidationError(
			"Import",
			"INVALID_IMPORT",
			"job document is not valid JSON: "+err.Error(),
			ErrInvalidImport,
		)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return nil, NewValidationError(
			"Import",
			"INVALID_IMPORT",
			strings.Join(details, "; "),
			ErrInvalidImport,
		)
	}

	var imported models.Job
	if err := json.Unmarshal(raw, &imported); err != nil {
		return nil, NewValidationError(
			"Import",
			"INVALID_IMPORT",
			"failed to decode job document: "+err.Error(),
			ErrInvalidImport,
		)
	}

	// Replace the scaffolded graph with the imported one, then validate
	// before anything touches storage.
	job := models.NewJob(imported.Name, owner)
	job.Description = imported.Description
	job.Nodes = imported.Nodes
	job.Edges = imported.Edges
	job.Normalize()

	if err := s.validateGraph(job); err != nil {
		return nil, err
	}

	if err := s.persistence.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save imported job: %w", err)
	}

	return job, nil
}
