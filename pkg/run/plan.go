package run

import (
	"sort"

	"github.com/paygrid/paygrid/pkg/cost"
	"github.com/paygrid/paygrid/pkg/graph"
	"github.com/paygrid/paygrid/pkg/inputs"
	"github.com/paygrid/paygrid/pkg/models"
)

// Plan is the resolved, validated view of one prospective run: the reachable
// node set, fully resolved resource inputs, and the total cost. It is a pure
// value computed from an immutable job snapshot; planning mutates nothing.
type Plan struct {
	JobID          string              `json:"job_id"`
	TriggerIDs     []string            `json:"trigger_ids"`
	Reachable      []string            `json:"reachable"`
	Resolution     *inputs.Resolution  `json:"resolution"`
	Cost           cost.Estimate       `json:"cost"`
	BalanceMicro   int64               `json:"balance_micro"`
	WorkflowValues map[string]any      `json:"workflow_values,omitempty"`
	ReferenceCycle graph.ReferenceCycle `json:"reference_cycle,omitempty"`
}

// Build computes the run plan for a job: reachability from the active
// triggers, input resolution for every reachable resource, the reference
// cycle check, and the cost estimate against the available balance.
func Build(job *models.Job, active graph.ActiveTriggers, workflowValues map[string]any, balanceMicro int64) (*Plan, error) {
	triggers := job.TriggerNodes()
	if len(triggers) == 0 {
		return nil, ErrNoTriggerNodes
	}

	if len(active) == 0 {
		active = graph.NewActiveTriggers(job)
	}

	reachableSet := graph.Reachable(job, active)

	reachable := make([]string, 0, len(reachableSet))
	for id := range reachableSet {
		reachable = append(reachable, id)
	}

	sort.Strings(reachable)

	triggerIDs := active.IDs()
	sort.Strings(triggerIDs)

	return &Plan{
		JobID:          job.ID,
		TriggerIDs:     triggerIDs,
		Reachable:      reachable,
		Resolution:     inputs.Resolve(job, reachableSet, workflowValues),
		Cost:           cost.Calculate(job, reachableSet),
		BalanceMicro:   balanceMicro,
		WorkflowValues: workflowValues,
		ReferenceCycle: graph.FindReferenceCycle(job, reachableSet),
	}, nil
}

// Validate returns the blocking report for the plan, or nil when the run may
// be submitted. The balance check blocks submission but never alters the
// computed total.
func (p *Plan) Validate() *ValidationError {
	verr := &ValidationError{
		Missing:      p.Resolution.Missing,
		CycleNodeIDs: p.ReferenceCycle,
		Insufficient: p.Cost.InsufficientBalance(p.BalanceMicro),
	}

	switch {
	case len(verr.Missing) > 0:
		verr.Err = ErrMissingInputs
	case len(verr.CycleNodeIDs) > 0:
		verr.Err = ErrReferenceCycle
	case verr.Insufficient:
		verr.Err = ErrInsufficientBalance
	default:
		return nil
	}

	return verr
}
