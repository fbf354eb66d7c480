package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paygrid/paygrid/pkg/eventbus"
	"github.com/paygrid/paygrid/pkg/events"
	"github.com/paygrid/paygrid/pkg/graph"
	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/otelhelper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Submitter is the external run submission boundary. A rejection must leave
// the job exactly as the user left it; the service guarantees that by only
// handing the submitter a plan value.
type Submitter interface {
	Confirm(ctx context.Context, plan *Plan) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, plan *Plan) error

func (f SubmitterFunc) Confirm(ctx context.Context, plan *Plan) error {
	return f(ctx, plan)
}

// Service coordinates run confirmation: plan, validate, submit, then announce
// the run on the event bus and reset the tracker.
type Service struct {
	logger    *slog.Logger
	submitter Submitter
	bus       eventbus.EventBus
	tracker   *Tracker
}

func NewService(logger *slog.Logger, submitter Submitter, bus eventbus.EventBus, tracker *Tracker) *Service {
	return &Service{
		logger:    logger.With("module", "run_service"),
		submitter: submitter,
		bus:       bus,
		tracker:   tracker,
	}
}

// ConfirmRun validates and submits a run for the job. Validation problems and
// submission failures both leave graph state untouched.
func (s *Service) ConfirmRun(
	ctx context.Context,
	job *models.Job,
	active graph.ActiveTriggers,
	workflowValues map[string]any,
	balanceMicro int64,
) (*Plan, string, error) {
	tracer := otel.Tracer("paygrid.run")

	ctx, span := otelhelper.StartSpan(ctx, tracer, "run.confirm",
		attribute.String(otelhelper.JobIDKey, job.ID),
	)
	defer span.End()

	plan, err := Build(job, active, workflowValues, balanceMicro)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, "", err
	}

	if verr := plan.Validate(); verr != nil {
		otelhelper.SetError(span, verr)

		return plan, "", verr
	}

	err = s.submitter.Confirm(ctx, plan)
	if err != nil {
		otelhelper.SetError(span, err)
		s.logger.ErrorContext(ctx, "Run submission rejected", "job_id", job.ID, "error", err)

		return plan, "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	runID := uuid.New().String()
	span.SetAttributes(attribute.String(otelhelper.RunIDKey, runID))

	s.tracker.Reset(runID, plan.Reachable)

	started := events.RunStarted{
		BaseEvent: events.BaseEvent{
			ID:        s.bus.GenerateID(),
			Type:      events.RunStartedEvent,
			Timestamp: time.Now().UTC(),
			JobID:     job.ID,
			RunID:     runID,
		},
		TriggerIDs: plan.TriggerIDs,
		Reachable:  plan.Reachable,
		TotalMicro: plan.Cost.TotalMicro,
	}

	err = s.bus.Publish(ctx, job.ID, started)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish run started event", "job_id", job.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "Run confirmed",
		"job_id", job.ID,
		"run_id", runID,
		"reachable", len(plan.Reachable),
		"total_micro", plan.Cost.TotalMicro)

	return plan, runID, nil
}

// Cancel announces cancellation of the current run and moves every
// non-terminal node back to idle.
func (s *Service) Cancel(ctx context.Context, jobID string) error {
	s.tracker.Cancel()

	cancelled := events.RunCancelled{
		BaseEvent: events.BaseEvent{
			ID:        s.bus.GenerateID(),
			Type:      events.RunCancelledEvent,
			Timestamp: time.Now().UTC(),
			JobID:     jobID,
			RunID:     s.tracker.RunID(),
		},
	}

	return s.bus.Publish(ctx, jobID, cancelled)
}
