// Package inputs resolves resource node input fields into concrete run
// payloads and reports the required fields a run is still missing.
package inputs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paygrid/paygrid/pkg/models"
)

// DefaultSourceField is the output key a reference reads when the editor left
// SourceField empty.
const DefaultSourceField = "response"

// Value is one resolved entry of a run payload: either a literal carried
// verbatim, or a reference resolved by the executor once the named node
// completes (or from the workflow input values when the source is the
// trigger).
type Value struct {
	Kind         models.InputKind `json:"-"`
	Literal      any              `json:"-"`
	SourceNodeID string           `json:"-"`
	SourceField  string           `json:"-"`
}

type referencePayload struct {
	Type         string `json:"type"`
	SourceNodeID string `json:"source_node_id"`
	SourceField  string `json:"source_field,omitempty"`
}

// MarshalJSON emits static values verbatim and references as a tagged object,
// matching the run submission contract.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == models.InputKindReference {
		return json.Marshal(referencePayload{
			Type:         string(models.InputKindReference),
			SourceNodeID: v.SourceNodeID,
			SourceField:  v.SourceField,
		})
	}

	return json.Marshal(v.Literal)
}

// Resolution is the outcome of resolving every reachable resource: the
// concrete payload per resource node id, plus the human-readable list of
// missing required fields that blocks submission when non-empty.
type Resolution struct {
	ResourceInputs map[string]map[string]Value `json:"resource_inputs"`
	Missing        []string                    `json:"missing,omitempty"`
}

// Valid reports whether the run may be submitted.
func (r *Resolution) Valid() bool {
	return len(r.Missing) == 0
}

// EffectiveFields merges a resource's declared schema sources into one field
// set keyed by name: body fields, then query fields, then header fields, then
// prompt template parameters translated into string fields. A name present in
// more than one source is defined by whichever is read last.
func EffectiveFields(ref models.ResourceRef) []models.InputField {
	ordered := make([]string, 0)
	byName := make(map[string]models.InputField)

	add := func(field models.InputField) {
		if _, exists := byName[field.Name]; !exists {
			ordered = append(ordered, field.Name)
		}

		byName[field.Name] = field
	}

	for _, f := range ref.Schema.Body {
		add(f)
	}

	for _, f := range ref.Schema.Query {
		add(f)
	}

	for _, f := range ref.Schema.Header {
		add(f)
	}

	for _, p := range ref.Schema.PromptParams {
		add(models.InputField{
			Name:        p.Name,
			Type:        models.FieldKindString,
			Required:    p.Required,
			Description: p.Description,
			Default:     p.Default,
		})
	}

	fields := make([]models.InputField, 0, len(ordered))
	for _, name := range ordered {
		fields = append(fields, byName[name])
	}

	return fields
}

// Resolve derives the run payload for every reachable resource node and
// validates required fields. Unreachable resources contribute nothing, even
// when they have required-but-unfilled fields. Workflow-level required inputs
// without a supplied value or declared default are reported as
// "Trigger: <name>". The job is treated as an immutable snapshot.
func Resolve(job *models.Job, reachable map[string]bool, workflowValues map[string]any) *Resolution {
	resolution := &Resolution{
		ResourceInputs: make(map[string]map[string]Value),
	}

	for _, node := range job.Nodes {
		if node.Resource == nil || !reachable[node.ID] {
			continue
		}

		payload, missing := resolveResource(node)
		resolution.ResourceInputs[node.ID] = payload
		resolution.Missing = append(resolution.Missing, missing...)
	}

	for _, trigger := range job.TriggerNodes() {
		resolution.Missing = append(resolution.Missing, missingWorkflowInputs(trigger.Trigger, workflowValues)...)
	}

	return resolution
}

// resolveResource maps one resource node's effective fields through its
// configured inputs.
func resolveResource(node *models.Node) (map[string]Value, []string) {
	data := node.Resource
	payload := make(map[string]Value)

	var missing []string

	for _, field := range EffectiveFields(data.Ref) {
		input, configured := data.ConfiguredInputs[field.Name]
		if !configured || !input.IsSet() {
			if field.Required {
				missing = append(missing, fmt.Sprintf("%s: %s", data.Ref.Name, field.Name))
			}

			continue
		}

		payload[field.Name] = resolveInput(field, input)
	}

	return payload, missing
}

func resolveInput(field models.InputField, input models.ConfiguredInput) Value {
	if input.Kind == models.InputKindReference {
		sourceField := input.SourceField
		if sourceField == "" {
			sourceField = DefaultSourceField
		}

		return Value{
			Kind:         models.InputKindReference,
			SourceNodeID: input.SourceNodeID,
			SourceField:  sourceField,
		}
	}

	return Value{
		Kind:    models.InputKindStatic,
		Literal: coerceLiteral(field, input.Value),
	}
}

// coerceLiteral splits newline-delimited text into an array when the field's
// declared type is array. Everything else travels verbatim.
func coerceLiteral(field models.InputField, value any) any {
	if field.Type != models.FieldKindArray {
		return value
	}

	text, ok := value.(string)
	if !ok {
		return value
	}

	var items []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}

	return items
}

func missingWorkflowInputs(trigger *models.TriggerData, values map[string]any) []string {
	if trigger == nil {
		return nil
	}

	var missing []string

	for _, declared := range trigger.Inputs {
		if !declared.Required {
			continue
		}

		if value, supplied := values[declared.Name]; supplied && value != nil && value != "" {
			continue
		}

		if declared.Default != nil && declared.Default != "" {
			continue
		}

		missing = append(missing, "Trigger: "+declared.Name)
	}

	return missing
}
