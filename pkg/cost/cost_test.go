package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paygrid/paygrid/pkg/testutil"
)

func TestCalculate_SumsReachableResourcesPlusFees(t *testing.T) {
	resA := testutil.CreateTestNode(testutil.WithID("res-a"), testutil.WithPrice(100_000)) // $0.10
	resB := testutil.CreateTestNode(testutil.WithID("res-b"), testutil.WithPrice(250_000)) // $0.25
	output := testutil.CreateTestNode(testutil.WithOutputNode(false), testutil.WithID("out"))

	job := testutil.CreateTestJob(resA, resB, output)

	estimate := Calculate(job, map[string]bool{"res-a": true, "res-b": true})

	assert.Equal(t, int64(350_000), estimate.ResourceMicro)
	assert.Equal(t, PlatformFeeMicro, estimate.PlatformMicro)
	assert.Equal(t, int64(0), estimate.StorageMicro)
	assert.Equal(t, int64(400_000), estimate.TotalMicro)
	assert.Equal(t, "0.40", FormatMicro(estimate.TotalMicro))
}

func TestCalculate_UnreachableResourceExcluded(t *testing.T) {
	resA := testutil.CreateTestNode(testutil.WithID("res-a"), testutil.WithPrice(100_000))
	resB := testutil.CreateTestNode(testutil.WithID("res-b"), testutil.WithPrice(250_000))

	job := testutil.CreateTestJob(resA, resB)

	estimate := Calculate(job, map[string]bool{"res-a": true})

	assert.Equal(t, int64(100_000), estimate.ResourceMicro)
	assert.Equal(t, int64(150_000), estimate.TotalMicro)
}

func TestCalculate_StorageFeeFollowsDestinationToggle(t *testing.T) {
	res := testutil.CreateTestNode(testutil.WithID("res-a"), testutil.WithPrice(100_000))
	output := testutil.CreateTestNode(testutil.WithOutputNode(true), testutil.WithID("out"))

	job := testutil.CreateTestJob(res, output)
	reachable := map[string]bool{"res-a": true}

	withStorage := Calculate(job, reachable)
	assert.Equal(t, StorageFeeMicro, withStorage.StorageMicro)
	assert.Equal(t, int64(250_000), withStorage.TotalMicro)

	// Disabling the destination removes the fee on the next recompute.
	output.Output.Destinations[1].Enabled = false

	withoutStorage := Calculate(job, reachable)
	assert.Equal(t, int64(0), withoutStorage.StorageMicro)
	assert.Equal(t, int64(150_000), withoutStorage.TotalMicro)
}

func TestEstimate_InsufficientBalance(t *testing.T) {
	estimate := Estimate{TotalMicro: 400_000}

	assert.False(t, estimate.InsufficientBalance(400_000))
	assert.False(t, estimate.InsufficientBalance(500_000))
	assert.True(t, estimate.InsufficientBalance(399_999))
}

func TestFormatMicro(t *testing.T) {
	assert.Equal(t, "0.40", FormatMicro(400_000))
	assert.Equal(t, "0.05", FormatMicro(50_000))
	assert.Equal(t, "1.00", FormatMicro(1_000_000))
	assert.Equal(t, "0.123456", FormatMicro(123_456))
	assert.Equal(t, "2.50", FormatMicro(2_500_000))
	assert.Equal(t, "0.00", FormatMicro(0))
	assert.Equal(t, "-0.40", FormatMicro(-400_000))
}
