// Package models defines the core graph records for paid job workflows.
package models

// NodeType represents the role a node plays in a job graph.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"   // Entry points: manual, webhook, schedule
	NodeTypeResource  NodeType = "resource"  // Paid external resources, billed per call
	NodeTypeTransform NodeType = "transform" // Data transforms between nodes
	NodeTypeSource    NodeType = "source"    // Data sources (job history, URL fetch)
	NodeTypeOutput    NodeType = "output"    // Output sink with destination toggles
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeTrigger, NodeTypeResource, NodeTypeTransform, NodeTypeSource, NodeTypeOutput:
		return true
	default:
		return false
	}
}

// Node is a single typed node in a job graph. The id is assigned at creation
// time, never reused, and is the only identifier other components may
// reference. Exactly one of the data pointers is set, matching Type.
type Node struct {
	ID        string   `json:"id"   validate:"required"`
	Type      NodeType `json:"type" validate:"required"`
	Name      string   `json:"name"`
	PositionX int      `json:"position_x"`
	PositionY int      `json:"position_y"`

	Trigger   *TriggerData   `json:"trigger,omitempty"`
	Resource  *ResourceData  `json:"resource,omitempty"`
	Transform *TransformData `json:"transform,omitempty"`
	Source    *SourceData    `json:"source,omitempty"`
	Output    *OutputData    `json:"output,omitempty"`
}

// IsBillable reports whether this node type contributes to run cost or has
// configurable output. Only these node types appear in the reachable set.
func (n *Node) IsBillable() bool {
	return n.Type == NodeTypeResource || n.Type == NodeTypeSource
}

// IsDuplicable reports whether this node may be copied to the clipboard.
// Trigger and output nodes are structurally singular per their role.
func (n *Node) IsDuplicable() bool {
	switch n.Type {
	case NodeTypeResource, NodeTypeTransform, NodeTypeSource:
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the node. Used by the clipboard and by run
// planning, which must never mutate its input snapshot.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		ID:        n.ID,
		Type:      n.Type,
		Name:      n.Name,
		PositionX: n.PositionX,
		PositionY: n.PositionY,
	}

	clone.Trigger = n.Trigger.Clone()
	clone.Resource = n.Resource.Clone()
	clone.Transform = n.Transform.Clone()
	clone.Source = n.Source.Clone()
	clone.Output = n.Output.Clone()

	return clone
}

// NodeStatus defines the possible per-node execution states during a run.
type NodeStatus string

const (
	NodeStatusIdle      NodeStatus = "idle"
	NodeStatusPending   NodeStatus = "pending"
	NodeStatusRunning   NodeStatus = "running"
	NodeStatusCompleted NodeStatus = "completed"
	NodeStatusFailed    NodeStatus = "failed"
)

// IsTerminal reports whether the status is final for the current run.
func (s NodeStatus) IsTerminal() bool {
	return s == NodeStatusCompleted || s == NodeStatusFailed
}

// copyAnyMap makes a shallow copy of a map[string]any.
func copyAnyMap(original map[string]any) map[string]any {
	if original == nil {
		return nil
	}

	result := make(map[string]any, len(original))
	for k, v := range original {
		result[k] = v
	}

	return result
}

func copyStringMap(original map[string]string) map[string]string {
	if original == nil {
		return nil
	}

	result := make(map[string]string, len(original))
	for k, v := range original {
		result[k] = v
	}

	return result
}
