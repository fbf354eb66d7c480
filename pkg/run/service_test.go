package run

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/paygrid/pkg/channels/gochannel"
	"github.com/paygrid/paygrid/pkg/eventbus"
	"github.com/paygrid/paygrid/pkg/models"
)

func newTestService(t *testing.T, submitter Submitter) (*Service, *Tracker, eventbus.EventBus) {
	t.Helper()

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	tracker := NewTracker()

	return NewService(logger, submitter, bus, tracker), tracker, bus
}

func acceptAll(_ context.Context, _ *Plan) error {
	return nil
}

func TestService_ConfirmRun_ResetsTracker(t *testing.T) {
	service, tracker, _ := newTestService(t, SubmitterFunc(acceptAll))

	job := buildRunnableJob()

	plan, runID, err := service.ConfirmRun(context.Background(), job, nil, nil, 1_000_000)
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.NotEmpty(t, runID)
	assert.Equal(t, runID, tracker.RunID())
	assert.Equal(t, models.NodeStatusPending, tracker.Status("res-1"))
}

func TestService_ConfirmRun_ValidationBlocksSubmission(t *testing.T) {
	submitted := false
	submitter := SubmitterFunc(func(_ context.Context, _ *Plan) error {
		submitted = true

		return nil
	})

	service, tracker, _ := newTestService(t, submitter)

	job := buildRunnableJob()
	job.Node("res-1").Resource.ClearInputs()

	plan, runID, err := service.ConfirmRun(context.Background(), job, nil, nil, 1_000_000)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotNil(t, plan)
	assert.Empty(t, runID)
	assert.False(t, submitted)
	assert.Empty(t, tracker.RunID())
}

func TestService_ConfirmRun_SubmitterRejectionLeavesStateUntouched(t *testing.T) {
	rejection := errors.New("settlement declined")
	submitter := SubmitterFunc(func(_ context.Context, _ *Plan) error {
		return rejection
	})

	service, tracker, _ := newTestService(t, submitter)

	job := buildRunnableJob()
	inputsBefore := job.Node("res-1").Resource.ConfiguredInputs["prompt"]

	_, runID, err := service.ConfirmRun(context.Background(), job, nil, nil, 1_000_000)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Empty(t, runID)
	assert.Empty(t, tracker.RunID())
	assert.Empty(t, tracker.Snapshot())
	// The job configuration is exactly as the user left it.
	assert.Equal(t, inputsBefore, job.Node("res-1").Resource.ConfiguredInputs["prompt"])
}

func TestService_Cancel_MovesNonTerminalToIdle(t *testing.T) {
	service, tracker, _ := newTestService(t, SubmitterFunc(acceptAll))

	job := buildRunnableJob()

	_, runID, err := service.ConfirmRun(context.Background(), job, nil, nil, 1_000_000)
	require.NoError(t, err)

	tracker.Apply("res-1", models.NodeStatusRunning)

	require.NoError(t, service.Cancel(context.Background(), job.ID))

	assert.Equal(t, runID, tracker.RunID())
	assert.Equal(t, models.NodeStatusIdle, tracker.Status("res-1"))
}
