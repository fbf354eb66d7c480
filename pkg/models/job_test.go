package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob_ScaffoldsTriggerAndOutput(t *testing.T) {
	job := NewJob("My Job", "user-1")

	require.Len(t, job.Nodes, 2)

	triggers := job.TriggerNodes()
	require.Len(t, triggers, 1)
	assert.True(t, triggers[0].Trigger.HasMethod(TriggerMethodManual))

	outputs := job.OutputNodes()
	require.Len(t, outputs, 1)
	assert.Equal(t, DestinationApp, outputs[0].Output.Destinations[0].ID)
	assert.True(t, outputs[0].Output.Destinations[0].Enabled)
}

func TestJob_AddNode_RejectsDuplicateID(t *testing.T) {
	job := NewJob("My Job", "user-1")

	node := &Node{ID: "res-1", Type: NodeTypeResource, Resource: &ResourceData{}}
	require.NoError(t, job.AddNode(node))

	err := job.AddNode(&Node{ID: "res-1", Type: NodeTypeResource, Resource: &ResourceData{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateNodeID)
}

func TestJob_AddNode_AssignsIDWhenEmpty(t *testing.T) {
	job := NewJob("My Job", "user-1")

	node := &Node{Type: NodeTypeSource, Source: &SourceData{Kind: SourceKindURLFetch}}
	require.NoError(t, job.AddNode(node))

	assert.NotEmpty(t, node.ID)
	assert.Contains(t, node.ID, "source-")
}

func TestJob_Connect_RequiresBothNodes(t *testing.T) {
	job := NewJob("My Job", "user-1")
	trigger := job.TriggerNodes()[0]

	_, err := job.Connect(trigger.ID, "missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	_, err = job.Connect("missing", trigger.ID)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	edge, err := job.Connect(trigger.ID, job.OutputNodes()[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, edge.ID)
}

func TestJob_DeleteNode_RemovesTouchingEdges(t *testing.T) {
	job := NewJob("My Job", "user-1")
	trigger := job.TriggerNodes()[0]
	output := job.OutputNodes()[0]

	resource := &Node{ID: "res-1", Type: NodeTypeResource, Resource: &ResourceData{}}
	require.NoError(t, job.AddNode(resource))

	_, err := job.Connect(trigger.ID, resource.ID)
	require.NoError(t, err)
	_, err = job.Connect(resource.ID, output.ID)
	require.NoError(t, err)
	survivor, err := job.Connect(trigger.ID, output.ID)
	require.NoError(t, err)

	require.NoError(t, job.DeleteNode(resource.ID))

	assert.Nil(t, job.Node(resource.ID))
	require.Len(t, job.Edges, 1)
	assert.Equal(t, survivor.ID, job.Edges[0].ID)
}

func TestJob_DeleteNode_MissingNode(t *testing.T) {
	job := NewJob("My Job", "user-1")

	err := job.DeleteNode("nope")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestJob_Normalize_DropsBlankAndDuplicateWorkflowInputs(t *testing.T) {
	job := NewJob("My Job", "user-1")
	trigger := job.TriggerNodes()[0]
	trigger.Trigger.Inputs = []WorkflowInput{
		{Name: "query", Type: FieldKindString, Required: true},
		{Name: "", Type: FieldKindString},
		{Name: "query", Type: FieldKindNumber},
		{Name: "limit", Type: FieldKindNumber},
	}

	job.Normalize()

	require.Len(t, trigger.Trigger.Inputs, 2)
	assert.Equal(t, "query", trigger.Trigger.Inputs[0].Name)
	// First declaration wins on duplicates.
	assert.Equal(t, FieldKindString, trigger.Trigger.Inputs[0].Type)
	assert.Equal(t, "limit", trigger.Trigger.Inputs[1].Name)
}

func TestJob_Normalize_DowngradesStaleReferences(t *testing.T) {
	job := NewJob("My Job", "user-1")

	resource := &Node{
		ID:   "res-1",
		Type: NodeTypeResource,
		Resource: &ResourceData{
			ConfiguredInputs: map[string]ConfiguredInput{
				"a": {Kind: InputKindReference, SourceNodeID: "gone"},
				"b": {Kind: InputKindReference, SourceNodeID: TriggerSourceID},
				"c": {Kind: InputKindStatic, Value: "kept"},
			},
		},
	}
	require.NoError(t, job.AddNode(resource))

	job.Normalize()

	inputs := resource.Resource.ConfiguredInputs
	assert.Equal(t, ConfiguredInput{Kind: InputKindStatic, Value: ""}, inputs["a"])
	// The trigger sentinel always resolves.
	assert.Equal(t, TriggerSourceID, inputs["b"].SourceNodeID)
	assert.Equal(t, "kept", inputs["c"].Value)
}

func TestJob_Clone_IsDeep(t *testing.T) {
	job := NewJob("My Job", "user-1")

	resource := &Node{
		ID:   "res-1",
		Type: NodeTypeResource,
		Resource: &ResourceData{
			ConfiguredInputs: map[string]ConfiguredInput{
				"a": {Kind: InputKindStatic, Value: "original"},
			},
		},
	}
	require.NoError(t, job.AddNode(resource))

	clone := job.Clone()
	clone.Node("res-1").Resource.SetInput("a", ConfiguredInput{Kind: InputKindStatic, Value: "changed"})
	clone.Nodes = clone.Nodes[:1]

	assert.Equal(t, "original", resource.Resource.ConfiguredInputs["a"].Value)
	assert.Len(t, job.Nodes, 3)
}

func TestNode_IsBillable(t *testing.T) {
	assert.True(t, (&Node{Type: NodeTypeResource}).IsBillable())
	assert.True(t, (&Node{Type: NodeTypeSource}).IsBillable())
	assert.False(t, (&Node{Type: NodeTypeTrigger}).IsBillable())
	assert.False(t, (&Node{Type: NodeTypeTransform}).IsBillable())
	assert.False(t, (&Node{Type: NodeTypeOutput}).IsBillable())
}

func TestNodeStatus_IsTerminal(t *testing.T) {
	assert.True(t, NodeStatusCompleted.IsTerminal())
	assert.True(t, NodeStatusFailed.IsTerminal())
	assert.False(t, NodeStatusIdle.IsTerminal())
	assert.False(t, NodeStatusPending.IsTerminal())
	assert.False(t, NodeStatusRunning.IsTerminal())
}

func TestJob_StorageEnabled(t *testing.T) {
	job := NewJob("My Job", "user-1")
	assert.False(t, job.StorageEnabled())

	output := job.OutputNodes()[0]
	output.Output.Destinations = append(output.Output.Destinations,
		Destination{ID: DestinationStorage, Enabled: true})

	assert.True(t, job.StorageEnabled())
}
