// Package run assembles and validates run plans, owns the submission
// boundary, and tracks per-node execution status during a run.
package run

import (
	"sync"

	"github.com/paygrid/paygrid/pkg/models"
)

// statusRank orders states so the reducer never moves a node backwards when
// events arrive out of order.
var statusRank = map[models.NodeStatus]int{
	models.NodeStatusIdle:      0,
	models.NodeStatusPending:   1,
	models.NodeStatusRunning:   2,
	models.NodeStatusCompleted: 3,
	models.NodeStatusFailed:    3,
}

// NextStatus is the pure reducer from (current state, incoming event status)
// to next state. Terminal states absorb every further event until the next
// run reset; out-of-order and duplicate deliveries collapse to no-ops.
func NextStatus(current, incoming models.NodeStatus) models.NodeStatus {
	if current.IsTerminal() {
		return current
	}

	if statusRank[incoming] <= statusRank[current] {
		return current
	}

	return incoming
}

// Tracker holds per-node execution status for the current run. It performs no
// polling or timing; external progress events drive every transition, and
// each event only ever updates the single node it names.
type Tracker struct {
	mu       sync.RWMutex
	runID    string
	statuses map[string]models.NodeStatus
}

func NewTracker() *Tracker {
	return &Tracker{
		statuses: make(map[string]models.NodeStatus),
	}
}

// Reset starts a new run: every reachable node moves to pending, everything
// else returns to idle by dropping its entry. Called before any running
// transition is emitted.
func (t *Tracker) Reset(runID string, reachable []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runID = runID
	t.statuses = make(map[string]models.NodeStatus, len(reachable))

	for _, nodeID := range reachable {
		t.statuses[nodeID] = models.NodeStatusPending
	}
}

// Apply feeds one progress event through the reducer. Events naming nodes the
// current run never reset are ignored without raising; that covers both nodes
// outside the reachable set and nodes no longer present in the graph.
func (t *Tracker) Apply(nodeID string, status models.NodeStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, tracked := t.statuses[nodeID]
	if !tracked {
		return
	}

	t.statuses[nodeID] = NextStatus(current, status)
}

// Cancel receives the external cancellation signal, valid in any node state:
// every non-terminal node moves back to idle and no error is raised.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for nodeID, status := range t.statuses {
		if !status.IsTerminal() {
			t.statuses[nodeID] = models.NodeStatusIdle
		}
	}
}

// RunID returns the id of the run the tracker was last reset for.
func (t *Tracker) RunID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.runID
}

// Status returns a node's current state, idle when untracked.
func (t *Tracker) Status(nodeID string) models.NodeStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if status, tracked := t.statuses[nodeID]; tracked {
		return status
	}

	return models.NodeStatusIdle
}

// Snapshot returns a copy of every tracked node's status.
func (t *Tracker) Snapshot() map[string]models.NodeStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make(map[string]models.NodeStatus, len(t.statuses))
	for nodeID, status := range t.statuses {
		snapshot[nodeID] = status
	}

	return snapshot
}
