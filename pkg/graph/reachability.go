// Package graph implements traversal and duplication semantics over job
// graphs: forward reachability from active triggers, reference-cycle
// detection, and the node clipboard.
package graph

import (
	"github.com/paygrid/paygrid/pkg/models"
)

// ActiveTriggers is the set of trigger node ids a run starts from. The zero
// value means "all triggers"; the resolver expands it against the job.
type ActiveTriggers map[string]bool

// NewActiveTriggers selects every trigger node in the job.
func NewActiveTriggers(job *models.Job) ActiveTriggers {
	active := make(ActiveTriggers)

	for _, n := range job.TriggerNodes() {
		active[n.ID] = true
	}

	return active
}

// Select marks a trigger id active.
func (a ActiveTriggers) Select(id string) {
	a[id] = true
}

// Deselect removes a trigger id from the active set. Deselecting the last
// remaining trigger is a no-op: a run must always start from at least one.
func (a ActiveTriggers) Deselect(id string) {
	if len(a) <= 1 {
		return
	}

	delete(a, id)
}

// IDs returns the active trigger ids in unspecified order.
func (a ActiveTriggers) IDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}

	return ids
}

// Reachable computes the set of billable node ids reachable by forward edge
// traversal from the active triggers. Trigger and transform nodes are
// traversed through but never appear in the result; nodes with no path from
// any active trigger are excluded from cost and from the run plan even when
// fully configured. An empty active set defaults to all trigger nodes.
//
// Traversal is breadth-first with a visited set, so every node is visited at
// most once and cycles in the edge graph cannot loop the resolver. The job's
// node and edge slices are treated as an immutable snapshot; Reachable never
// mutates its inputs.
func Reachable(job *models.Job, active ActiveTriggers) map[string]bool {
	adjacency := make(map[string][]string, len(job.Edges))
	for _, e := range job.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	queue := make([]string, 0, len(job.Nodes))

	if len(active) == 0 {
		for _, n := range job.TriggerNodes() {
			queue = append(queue, n.ID)
		}
	} else {
		for id := range active {
			queue = append(queue, id)
		}
	}

	visited := make(map[string]bool, len(job.Nodes))
	reachable := make(map[string]bool)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}

		visited[id] = true

		if node := job.Node(id); node != nil && node.IsBillable() {
			reachable[id] = true
		}

		queue = append(queue, adjacency[id]...)
	}

	return reachable
}
