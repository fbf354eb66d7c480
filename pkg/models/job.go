package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateNodeID is returned when adding a node whose id already exists.
	ErrDuplicateNodeID = errors.New("node id already exists in job")
	// ErrNodeNotFound is returned when an operation names a missing node.
	ErrNodeNotFound = errors.New("node not found in job")
)

// Job is a user-assembled graph of typed nodes plus the edges between them.
// All mutations are synchronous, whole-value replacements; readers treat the
// node and edge slices as an immutable snapshot per call.
type Job struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,min=3"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner"`
	Nodes       []*Node   `json:"nodes"`
	Edges       []*Edge   `json:"edges"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewJob creates a job scaffolded with one trigger node and one output node,
// the minimum shape the editor starts from.
func NewJob(name, owner string) *Job {
	now := time.Now().UTC()

	job := &Job{
		ID:        uuid.New().String(),
		Name:      name,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	trigger := &Node{
		ID:   NewNodeID(NodeTypeTrigger),
		Type: NodeTypeTrigger,
		Name: "Trigger",
		Trigger: &TriggerData{
			Methods: []TriggerMethod{TriggerMethodManual},
		},
	}
	output := &Node{
		ID:   NewNodeID(NodeTypeOutput),
		Type: NodeTypeOutput,
		Name: "Output",
		Output: &OutputData{
			Destinations: []Destination{{ID: DestinationApp, Enabled: true}},
		},
	}

	job.Nodes = []*Node{trigger, output}

	return job
}

// NewNodeID allocates a node id from the node type and a high-resolution
// timestamp. Monotonic within a session, which keeps paste collision-free.
func NewNodeID(nodeType NodeType) string {
	return fmt.Sprintf("%s-%d", nodeType, time.Now().UnixNano())
}

// Node returns the node with the given id, or nil.
func (j *Job) Node(id string) *Node {
	for _, n := range j.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}

// TriggerNodes returns every trigger node in the job.
func (j *Job) TriggerNodes() []*Node {
	var triggers []*Node

	for _, n := range j.Nodes {
		if n.Type == NodeTypeTrigger {
			triggers = append(triggers, n)
		}
	}

	return triggers
}

// OutputNodes returns every output node in the job.
func (j *Job) OutputNodes() []*Node {
	var outputs []*Node

	for _, n := range j.Nodes {
		if n.Type == NodeTypeOutput {
			outputs = append(outputs, n)
		}
	}

	return outputs
}

// StorageEnabled reports whether any output node enables the paid storage
// destination. Feeds the cost calculator's storage fee.
func (j *Job) StorageEnabled() bool {
	for _, n := range j.OutputNodes() {
		if n.Output.StorageEnabled() {
			return true
		}
	}

	return false
}

// AddNode appends a node. The id must be unique within the job.
func (j *Job) AddNode(node *Node) error {
	if node.ID == "" {
		node.ID = NewNodeID(node.Type)
	}

	if j.Node(node.ID) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, node.ID)
	}

	j.Nodes = append(j.Nodes, node)
	j.UpdatedAt = time.Now().UTC()

	return nil
}

// Connect adds a directed edge between two existing nodes.
func (j *Job) Connect(sourceID, targetID string) (*Edge, error) {
	if j.Node(sourceID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, sourceID)
	}

	if j.Node(targetID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, targetID)
	}

	edge := &Edge{
		ID:     uuid.New().String(),
		Source: sourceID,
		Target: targetID,
	}

	j.Edges = append(j.Edges, edge)
	j.UpdatedAt = time.Now().UTC()

	return edge, nil
}

// Disconnect removes the edge with the given id.
func (j *Job) Disconnect(edgeID string) {
	kept := j.Edges[:0]

	for _, e := range j.Edges {
		if e.ID != edgeID {
			kept = append(kept, e)
		}
	}

	j.Edges = kept
	j.UpdatedAt = time.Now().UTC()
}

// DeleteNode removes a node and every edge touching it, so no dangling edge
// survives a delete.
func (j *Job) DeleteNode(id string) error {
	if j.Node(id) == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	nodes := j.Nodes[:0]

	for _, n := range j.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}

	j.Nodes = nodes

	edges := j.Edges[:0]

	for _, e := range j.Edges {
		if !e.Touches(id) {
			edges = append(edges, e)
		}
	}

	j.Edges = edges
	j.UpdatedAt = time.Now().UTC()

	return nil
}

// Normalize applies the model invariants after loading or importing a job:
// blank or duplicate workflow input names are dropped, schedule expressions
// that fail cron parsing are flagged custom, and configured-input references
// pointing at nodes no longer present are downgraded to empty static entries.
// Structural problems are prevented here, at the mutation boundary, rather
// than detected after the fact.
func (j *Job) Normalize() {
	present := make(map[string]bool, len(j.Nodes))
	for _, n := range j.Nodes {
		present[n.ID] = true
	}

	for _, n := range j.Nodes {
		switch {
		case n.Trigger != nil:
			n.Trigger.normalizeInputs()
			n.Trigger.Schedule.normalize()
		case n.Resource != nil:
			normalizeReferences(n.Resource, present)
		}
	}
}

// normalizeReferences clears references to deleted nodes. The trigger sentinel
// always resolves, so it survives even though no node carries that id.
func normalizeReferences(data *ResourceData, present map[string]bool) {
	for field, input := range data.ConfiguredInputs {
		if input.Kind != InputKindReference || input.SourceNodeID == "" {
			continue
		}

		if input.SourceNodeID == TriggerSourceID || present[input.SourceNodeID] {
			continue
		}

		data.ConfiguredInputs[field] = ConfiguredInput{Kind: InputKindStatic, Value: ""}
	}
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() *Job {
	clone := &Job{
		ID:          j.ID,
		Name:        j.Name,
		Description: j.Description,
		Owner:       j.Owner,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}

	clone.Nodes = make([]*Node, len(j.Nodes))
	for i, n := range j.Nodes {
		clone.Nodes[i] = n.Clone()
	}

	clone.Edges = make([]*Edge, len(j.Edges))
	for i, e := range j.Edges {
		edge := *e
		clone.Edges[i] = &edge
	}

	return clone
}
