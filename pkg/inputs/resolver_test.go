package inputs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/testutil"
)

func TestEffectiveFields_MergeOrderLastWriteWins(t *testing.T) {
	ref := models.ResourceRef{
		ID:   "res",
		Name: "Res",
		Schema: models.InputSchema{
			Body: []models.InputField{
				{Name: "token", Type: models.FieldKindString},
				{Name: "query", Type: models.FieldKindString, Required: true},
			},
			Header: []models.InputField{
				{Name: "token", Type: models.FieldKindString, Required: true},
			},
			PromptParams: []models.PromptParam{
				{Name: "style", Required: true, Default: "plain"},
			},
		},
	}

	fields := EffectiveFields(ref)

	require.Len(t, fields, 3)
	// First occurrence fixes the position, later sources redefine the field.
	assert.Equal(t, "token", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "query", fields[1].Name)
	// Prompt params surface as string fields.
	assert.Equal(t, "style", fields[2].Name)
	assert.Equal(t, models.FieldKindString, fields[2].Type)
	assert.Equal(t, "plain", fields[2].Default)
}

func TestResolve_StaticAndReferenceValues(t *testing.T) {
	res := testutil.CreateTestNode(
		testutil.WithID("res-1"),
		testutil.WithRef(models.ResourceRef{
			ID:   "cat-1",
			Name: "Summarizer",
			Schema: models.InputSchema{
				Body: []models.InputField{
					{Name: "text", Type: models.FieldKindString, Required: true},
					{Name: "style", Type: models.FieldKindString},
				},
			},
		}),
		testutil.WithInput("text", models.ConfiguredInput{
			Kind:         models.InputKindReference,
			SourceNodeID: "res-0",
		}),
		testutil.WithInput("style", models.ConfiguredInput{
			Kind:  models.InputKindStatic,
			Value: "formal",
		}),
	)

	job := testutil.CreateTestJob(res)
	resolution := Resolve(job, map[string]bool{"res-1": true}, nil)

	require.True(t, resolution.Valid())

	payload := resolution.ResourceInputs["res-1"]
	require.Len(t, payload, 2)

	assert.Equal(t, models.InputKindReference, payload["text"].Kind)
	assert.Equal(t, "res-0", payload["text"].SourceNodeID)
	// An empty source field falls back to the default output key.
	assert.Equal(t, DefaultSourceField, payload["text"].SourceField)

	assert.Equal(t, "formal", payload["style"].Literal)
}

func TestResolve_MissingRequiredFieldFormat(t *testing.T) {
	res := testutil.CreateTestNode(
		testutil.WithID("res-1"),
		testutil.WithRef(models.ResourceRef{
			ID:   "cat-1",
			Name: "Image Generator",
			Schema: models.InputSchema{
				Body: []models.InputField{
					{Name: "prompt", Type: models.FieldKindString, Required: true},
				},
			},
		}),
	)

	job := testutil.CreateTestJob(res)
	resolution := Resolve(job, map[string]bool{"res-1": true}, nil)

	assert.False(t, resolution.Valid())
	assert.Equal(t, []string{"Image Generator: prompt"}, resolution.Missing)
}

func TestResolve_EmptyStaticValueIsUnset(t *testing.T) {
	res := testutil.CreateTestNode(
		testutil.WithID("res-1"),
		testutil.WithRef(models.ResourceRef{
			ID:   "cat-1",
			Name: "Res",
			Schema: models.InputSchema{
				Body: []models.InputField{
					{Name: "prompt", Type: models.FieldKindString, Required: true},
				},
			},
		}),
		testutil.WithInput("prompt", models.ConfiguredInput{Kind: models.InputKindStatic, Value: ""}),
	)

	job := testutil.CreateTestJob(res)
	resolution := Resolve(job, map[string]bool{"res-1": true}, nil)

	assert.Equal(t, []string{"Res: prompt"}, resolution.Missing)
}

func TestResolve_UnreachableResourceContributesNothing(t *testing.T) {
	res := testutil.CreateTestNode(
		testutil.WithID("res-1"),
		testutil.WithRef(models.ResourceRef{
			ID:   "cat-1",
			Name: "Res",
			Schema: models.InputSchema{
				Body: []models.InputField{
					{Name: "prompt", Type: models.FieldKindString, Required: true},
				},
			},
		}),
	)

	job := testutil.CreateTestJob(res)
	resolution := Resolve(job, map[string]bool{}, nil)

	assert.True(t, resolution.Valid())
	assert.Empty(t, resolution.ResourceInputs)
}

func TestResolve_WorkflowInputs(t *testing.T) {
	trigger := testutil.CreateTestNode(testutil.WithTriggerNode(
		models.WorkflowInput{Name: "query", Type: models.FieldKindString, Required: true},
		models.WorkflowInput{Name: "limit", Type: models.FieldKindNumber, Required: true, Default: 10},
		models.WorkflowInput{Name: "note", Type: models.FieldKindString},
	), testutil.WithID("trig"))

	job := testutil.CreateTestJob(trigger)

	// Nothing supplied: only the defaultless required input is missing.
	resolution := Resolve(job, map[string]bool{}, nil)
	assert.Equal(t, []string{"Trigger: query"}, resolution.Missing)

	// Supplying the value clears it.
	resolution = Resolve(job, map[string]bool{}, map[string]any{"query": "cats"})
	assert.True(t, resolution.Valid())
}

func TestCoerceLiteral_NewlineSplitForArrayFields(t *testing.T) {
	field := models.InputField{Name: "urls", Type: models.FieldKindArray}

	value := coerceLiteral(field, "one\n\n  two  \nthree\n")

	assert.Equal(t, []string{"one", "two", "three"}, value)
}

func TestCoerceLiteral_NonArrayVerbatim(t *testing.T) {
	field := models.InputField{Name: "text", Type: models.FieldKindString}

	assert.Equal(t, "a\nb", coerceLiteral(field, "a\nb"))
}

func TestValue_MarshalJSON(t *testing.T) {
	static := Value{Kind: models.InputKindStatic, Literal: "hello"}
	payload, err := json.Marshal(static)
	require.NoError(t, err)
	assert.JSONEq(t, `"hello"`, string(payload))

	reference := Value{
		Kind:         models.InputKindReference,
		SourceNodeID: "res-0",
		SourceField:  "response",
	}
	payload, err = json.Marshal(reference)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"reference","source_node_id":"res-0","source_field":"response"}`, string(payload))
}
