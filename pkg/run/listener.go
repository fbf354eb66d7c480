package run

import (
	"context"
	"log/slog"

	"github.com/paygrid/paygrid/pkg/eventbus"
	"github.com/paygrid/paygrid/pkg/events"
)

// Listener wires a tracker to the event bus so external run progress drives
// node status transitions.
type Listener struct {
	logger  *slog.Logger
	tracker *Tracker
}

func NewListener(logger *slog.Logger, tracker *Tracker) *Listener {
	return &Listener{
		logger:  logger.With("module", "run_listener"),
		tracker: tracker,
	}
}

// Register subscribes the tracker transitions to run lifecycle and node
// progress events.
func (l *Listener) Register(bus eventbus.EventBus) error {
	err := bus.Handle(events.RunStartedEvent, l.handleRunStarted)
	if err != nil {
		return err
	}

	err = bus.Handle(events.RunCancelledEvent, l.handleRunCancelled)
	if err != nil {
		return err
	}

	return bus.Handle(events.NodeProgressEvent, l.handleNodeProgress)
}

func (l *Listener) handleRunStarted(ctx context.Context, event any) error {
	started, ok := event.(*events.RunStarted)
	if !ok {
		return nil
	}

	l.logger.InfoContext(ctx, "Run started",
		"job_id", started.JobID,
		"run_id", started.RunID,
		"reachable", len(started.Reachable))

	l.tracker.Reset(started.RunID, started.Reachable)

	return nil
}

func (l *Listener) handleRunCancelled(ctx context.Context, event any) error {
	cancelled, ok := event.(*events.RunCancelled)
	if !ok {
		return nil
	}

	l.logger.InfoContext(ctx, "Run cancelled", "job_id", cancelled.JobID, "run_id", cancelled.RunID)
	l.tracker.Cancel()

	return nil
}

func (l *Listener) handleNodeProgress(ctx context.Context, event any) error {
	progress, ok := event.(*events.NodeProgress)
	if !ok {
		return nil
	}

	l.tracker.Apply(progress.NodeID, progress.Status)

	return nil
}
