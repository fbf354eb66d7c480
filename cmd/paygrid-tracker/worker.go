// Package main provides the tracker worker, which consumes run progress
// events and maintains per-node execution status.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/paygrid/paygrid/pkg/eventbus"
	"github.com/paygrid/paygrid/pkg/run"
)

type TrackerWorker struct {
	id       string
	logger   *slog.Logger
	eventBus eventbus.EventBus
	tracker  *run.Tracker
}

func NewTrackerWorker(id string, eventBus eventbus.EventBus, logger *slog.Logger) *TrackerWorker {
	return &TrackerWorker{
		id:       id,
		logger:   logger.With("module", "paygrid-tracker", "tracker_id", id),
		eventBus: eventBus,
		tracker:  run.NewTracker(),
	}
}

// Tracker exposes the status reducer, mainly for tests.
func (w *TrackerWorker) Tracker() *run.Tracker {
	return w.tracker
}

func (w *TrackerWorker) Start(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Starting tracker worker", "tracker_id", w.id)

	listener := run.NewListener(w.logger, w.tracker)

	err := listener.Register(w.eventBus)
	if err != nil {
		return err
	}

	err = w.eventBus.Subscribe(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	w.logger.InfoContext(ctx, "Tracker worker started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	w.logger.InfoContext(ctx, "Shutting down tracker worker...")

	return nil
}
