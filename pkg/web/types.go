// Package web provides HTTP request and response types for the job API.
package web

import "github.com/paygrid/paygrid/pkg/models"

// CreateJobRequest represents the request body for creating a new job.
// New jobs are scaffolded with a trigger and an output node already
// connected, so only identity fields are accepted here.
type CreateJobRequest struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`
	Owner       string `json:"owner"       validate:"required"`
}

// CreateNodeRequest represents the request body for adding a node to a job
// graph. Exactly one of the data payloads should be set, matching Type.
type CreateNodeRequest struct {
	Type      string `json:"type" validate:"required,oneof=trigger resource transform source output"`
	Name      string `json:"name"`
	PositionX int    `json:"position_x"`
	PositionY int    `json:"position_y"`

	Trigger   *models.TriggerData   `json:"trigger,omitempty"`
	Resource  *models.ResourceData  `json:"resource,omitempty"`
	Transform *models.TransformData `json:"transform,omitempty"`
	Source    *models.SourceData    `json:"source,omitempty"`
	Output    *models.OutputData    `json:"output,omitempty"`
}

// ToNode converts the request into a model node. The ID is assigned by the
// service when empty.
func (r *CreateNodeRequest) ToNode() *models.Node {
	return &models.Node{
		Type:      models.NodeType(r.Type),
		Name:      r.Name,
		PositionX: r.PositionX,
		PositionY: r.PositionY,
		Trigger:   r.Trigger,
		Resource:  r.Resource,
		Transform: r.Transform,
		Source:    r.Source,
		Output:    r.Output,
	}
}

// CreateEdgeRequest represents the request body for connecting two nodes.
type CreateEdgeRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// SetInputRequest configures a single input field on a resource node.
type SetInputRequest struct {
	Kind         string `json:"kind"                     validate:"required,oneof=static reference"`
	Value        any    `json:"value,omitempty"`
	SourceNodeID string `json:"source_node_id,omitempty"`
	SourceField  string `json:"source_field,omitempty"`
}

// PlanRequest represents the request body for plan preview and run
// confirmation. TriggerIDs narrows the active trigger set; empty means all
// triggers. BalanceMicro is the caller's available balance in micro-units.
type PlanRequest struct {
	TriggerIDs     []string       `json:"trigger_ids,omitempty"`
	WorkflowValues map[string]any `json:"workflow_values,omitempty"`
	BalanceMicro   int64          `json:"balance_micro" validate:"min=0"`
}

// SaveParamsRequest represents stored workflow parameter values for a job.
type SaveParamsRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}
