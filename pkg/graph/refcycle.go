package graph

import (
	"sort"

	"github.com/paygrid/paygrid/pkg/models"
)

// ReferenceCycle lists the node ids involved in a cyclic dependency between
// configured-input references, sorted for stable reporting.
type ReferenceCycle []string

// FindReferenceCycle checks the reference graph, which is distinct from the
// edge graph: it has an arc from A to B whenever a configured input of A references
// B's output. Two resources referencing each other's outputs would deadlock
// any executor waiting on both, so a run is rejected at validation time when
// such a cycle exists among reachable nodes. Returns nil when acyclic.
func FindReferenceCycle(job *models.Job, reachable map[string]bool) ReferenceCycle {
	refs := make(map[string][]string)

	for _, n := range job.Nodes {
		if n.Resource == nil || !reachable[n.ID] {
			continue
		}

		for _, input := range n.Resource.ConfiguredInputs {
			if input.Kind != models.InputKindReference || input.SourceNodeID == "" {
				continue
			}

			if input.SourceNodeID == models.TriggerSourceID {
				continue
			}

			refs[n.ID] = append(refs[n.ID], input.SourceNodeID)
		}
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[string]int, len(refs))

	var cycle []string

	var visit func(id string) bool

	visit = func(id string) bool {
		state[id] = inStack

		for _, dep := range refs[id] {
			switch state[dep] {
			case inStack:
				cycle = append(cycle, id, dep)

				return true
			case unvisited:
				if visit(dep) {
					cycle = append(cycle, id)

					return true
				}
			}
		}

		state[id] = done

		return false
	}

	for id := range refs {
		if state[id] == unvisited && visit(id) {
			break
		}
	}

	if cycle == nil {
		return nil
	}

	seen := make(map[string]bool, len(cycle))
	unique := cycle[:0]

	for _, id := range cycle {
		if !seen[id] {
			seen[id] = true

			unique = append(unique, id)
		}
	}

	sort.Strings(unique)

	return unique
}
