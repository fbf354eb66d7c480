package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/paygrid/pkg/cost"
	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/testutil"
)

func buildRunnableJob() *models.Job {
	trigger := testutil.CreateTestNode(testutil.WithTriggerNode(), testutil.WithID("trig"))
	res := testutil.CreateTestNode(
		testutil.WithID("res-1"),
		testutil.WithPrice(100_000),
		testutil.WithInput("prompt", models.ConfiguredInput{
			Kind:  models.InputKindStatic,
			Value: "hello",
		}),
	)
	output := testutil.CreateTestNode(testutil.WithOutputNode(false), testutil.WithID("out"))

	job := testutil.CreateTestJob(trigger, res, output)
	testutil.Chain(job, "trig", "res-1", "out")

	return job
}

func TestBuild_NoTriggerNodes(t *testing.T) {
	res := testutil.CreateTestNode(testutil.WithID("res-1"))
	job := testutil.CreateTestJob(res)

	_, err := Build(job, nil, nil, 0)
	assert.ErrorIs(t, err, ErrNoTriggerNodes)
}

func TestBuild_CompletePlan(t *testing.T) {
	job := buildRunnableJob()

	plan, err := Build(job, nil, nil, 1_000_000)
	require.NoError(t, err)

	assert.Equal(t, job.ID, plan.JobID)
	assert.Equal(t, []string{"trig"}, plan.TriggerIDs)
	assert.Equal(t, []string{"res-1"}, plan.Reachable)
	assert.Equal(t, int64(100_000)+cost.PlatformFeeMicro, plan.Cost.TotalMicro)
	assert.Nil(t, plan.Validate())
}

func TestPlan_ValidateMissingInputs(t *testing.T) {
	job := buildRunnableJob()
	job.Node("res-1").Resource.ClearInputs()

	plan, err := Build(job, nil, nil, 1_000_000)
	require.NoError(t, err)

	verr := plan.Validate()
	require.NotNil(t, verr)
	assert.ErrorIs(t, verr, ErrMissingInputs)
	assert.Equal(t, []string{"Test Resource: prompt"}, verr.Missing)
}

func TestPlan_ValidateInsufficientBalance(t *testing.T) {
	job := buildRunnableJob()

	plan, err := Build(job, nil, nil, 100_000)
	require.NoError(t, err)

	verr := plan.Validate()
	require.NotNil(t, verr)
	assert.ErrorIs(t, verr, ErrInsufficientBalance)
	assert.True(t, verr.Insufficient)
	// The computed total is never altered by the balance check.
	assert.Equal(t, int64(150_000), plan.Cost.TotalMicro)
}

func TestPlan_ValidateReferenceCycle(t *testing.T) {
	trigger := testutil.CreateTestNode(testutil.WithTriggerNode(), testutil.WithID("trig"))
	resA := testutil.CreateTestNode(
		testutil.WithID("res-a"),
		testutil.WithInput("prompt", models.ConfiguredInput{
			Kind: models.InputKindReference, SourceNodeID: "res-b",
		}),
	)
	resB := testutil.CreateTestNode(
		testutil.WithID("res-b"),
		testutil.WithInput("prompt", models.ConfiguredInput{
			Kind: models.InputKindReference, SourceNodeID: "res-a",
		}),
	)

	job := testutil.CreateTestJob(trigger, resA, resB)
	testutil.Chain(job, "trig", "res-a", "res-b")

	plan, err := Build(job, nil, nil, 10_000_000)
	require.NoError(t, err)

	verr := plan.Validate()
	require.NotNil(t, verr)
	assert.ErrorIs(t, verr, ErrReferenceCycle)
	assert.Equal(t, []string{"res-a", "res-b"}, verr.CycleNodeIDs)
}

func TestBuild_MissingInputsTakePriorityInReport(t *testing.T) {
	job := buildRunnableJob()
	job.Node("res-1").Resource.ClearInputs()

	plan, err := Build(job, nil, nil, 0)
	require.NoError(t, err)

	verr := plan.Validate()
	require.NotNil(t, verr)
	// Both problems are reported, the wrapped sentinel follows priority.
	assert.ErrorIs(t, verr, ErrMissingInputs)
	assert.True(t, verr.Insufficient)
}

func TestBuild_ActiveSubsetNarrowsPlan(t *testing.T) {
	trigA := testutil.CreateTestNode(testutil.WithTriggerNode(), testutil.WithID("trig-a"))
	trigB := testutil.CreateTestNode(testutil.WithTriggerNode(), testutil.WithID("trig-b"))
	resA := testutil.CreateTestNode(testutil.WithID("res-a"), testutil.WithInput("prompt",
		models.ConfiguredInput{Kind: models.InputKindStatic, Value: "x"}))
	resB := testutil.CreateTestNode(testutil.WithID("res-b"), testutil.WithInput("prompt",
		models.ConfiguredInput{Kind: models.InputKindStatic, Value: "y"}))

	job := testutil.CreateTestJob(trigA, trigB, resA, resB)
	testutil.Chain(job, "trig-a", "res-a")
	testutil.Chain(job, "trig-b", "res-b")

	plan, err := Build(job, map[string]bool{"trig-a": true}, nil, 10_000_000)
	require.NoError(t, err)

	assert.Equal(t, []string{"trig-a"}, plan.TriggerIDs)
	assert.Equal(t, []string{"res-a"}, plan.Reachable)
}
