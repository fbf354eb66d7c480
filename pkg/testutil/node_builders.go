// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/google/uuid"

	"github.com/paygrid/paygrid/pkg/models"
)

// CreateTestNode creates a test resource node with default values that can be
// overridden.
func CreateTestNode(overrides ...func(*models.Node)) *models.Node {
	node := &models.Node{
		ID:        uuid.New().String(),
		Type:      models.NodeTypeResource,
		Name:      "Test Resource",
		PositionX: 100,
		PositionY: 200,
		Resource: &models.ResourceData{
			Ref: models.ResourceRef{
				ID:         "res-test",
				Name:       "Test Resource",
				PriceMicro: 100_000,
				Schema: models.InputSchema{
					Body: []models.InputField{
						{Name: "prompt", Type: models.FieldKindString, Required: true},
					},
				},
			},
		},
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithTriggerNode configures the node as a manual trigger node.
func WithTriggerNode(inputs ...models.WorkflowInput) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = models.NodeTypeTrigger
		n.Name = "Trigger"
		n.Resource = nil
		n.Trigger = &models.TriggerData{
			Methods: []models.TriggerMethod{models.TriggerMethodManual},
			Inputs:  inputs,
		}
	}
}

// WithOutputNode configures the node as an output node. Storage toggles the
// paid storage destination.
func WithOutputNode(storage bool) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = models.NodeTypeOutput
		n.Name = "Output"
		n.Resource = nil
		n.Output = &models.OutputData{
			Destinations: []models.Destination{
				{ID: models.DestinationApp, Enabled: true},
				{ID: models.DestinationStorage, Enabled: storage},
			},
		}
	}
}

// WithTransformNode configures the node as an extract transform.
func WithTransformNode(fieldPath string) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = models.NodeTypeTransform
		n.Name = "Transform"
		n.Resource = nil
		n.Transform = &models.TransformData{
			Kind:      models.TransformKindExtract,
			FieldPath: fieldPath,
		}
	}
}

// WithSourceNode configures the node as a URL fetch source.
func WithSourceNode(url string) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = models.NodeTypeSource
		n.Name = "Source"
		n.Resource = nil
		n.Source = &models.SourceData{
			Kind:     models.SourceKindURLFetch,
			URLFetch: &models.URLFetchConfig{URL: url},
		}
	}
}

// WithRef sets the resource catalog reference.
func WithRef(ref models.ResourceRef) func(*models.Node) {
	return func(n *models.Node) {
		if n.Resource == nil {
			n.Resource = &models.ResourceData{}
		}

		n.Resource.Ref = ref
	}
}

// WithPrice sets the resource price in micro-units.
func WithPrice(priceMicro int64) func(*models.Node) {
	return func(n *models.Node) {
		if n.Resource != nil {
			n.Resource.Ref.PriceMicro = priceMicro
		}
	}
}

// WithInput configures a static or reference input on the resource node.
func WithInput(field string, input models.ConfiguredInput) func(*models.Node) {
	return func(n *models.Node) {
		if n.Resource != nil {
			n.Resource.SetInput(field, input)
		}
	}
}

// WithName sets the node name.
func WithName(name string) func(*models.Node) {
	return func(n *models.Node) {
		n.Name = name
	}
}

// WithPosition sets the node position.
func WithPosition(x, y int) func(*models.Node) {
	return func(n *models.Node) {
		n.PositionX = x
		n.PositionY = y
	}
}

// WithID sets the node ID.
func WithID(id string) func(*models.Node) {
	return func(n *models.Node) {
		n.ID = id
	}
}

// CreateTestJob creates a job containing the given nodes. The first trigger
// and output nodes are connected to any resource nodes via fan edges when
// connect is true.
func CreateTestJob(nodes ...*models.Node) *models.Job {
	job := &models.Job{
		ID:    uuid.New().String(),
		Name:  "Test Job",
		Owner: "test-user",
		Nodes: nodes,
	}

	return job
}

// Chain connects the given node IDs in sequence and returns the job for
// chaining.
func Chain(job *models.Job, ids ...string) *models.Job {
	for i := 0; i+1 < len(ids); i++ {
		job.Edges = append(job.Edges, &models.Edge{
			ID:     uuid.New().String(),
			Source: ids[i],
			Target: ids[i+1],
		})
	}

	return job
}
