// Package cost computes the pre-run cost breakdown for a job: reachable
// resource prices, the platform fee, and the optional storage fee, in
// smallest-unit integer currency.
package cost

import (
	"fmt"
	"strings"

	"github.com/paygrid/paygrid/pkg/models"
)

// MicroUnit converts smallest-unit integer amounts to decimal currency.
const MicroUnit = 1_000_000

// Fixed fees in smallest units.
const (
	// PlatformFeeMicro is charged on every run.
	PlatformFeeMicro int64 = 50_000 // $0.05
	// StorageFeeMicro is charged when any output node enables paid storage.
	StorageFeeMicro int64 = 100_000 // $0.10
)

// Estimate is a cost breakdown for one prospective run. All amounts are
// smallest-unit integers.
type Estimate struct {
	ResourceMicro int64 `json:"resource_micro"`
	PlatformMicro int64 `json:"platform_micro"`
	StorageMicro  int64 `json:"storage_micro"`
	TotalMicro    int64 `json:"total_micro"`
}

// Calculate sums the prices of reachable resources, adds the platform fee,
// and adds the storage fee when any output node enables the storage
// destination. The estimate is recomputed from scratch on every call; nothing
// is cached across reachability, price, or destination changes.
func Calculate(job *models.Job, reachable map[string]bool) Estimate {
	estimate := Estimate{PlatformMicro: PlatformFeeMicro}

	for _, node := range job.Nodes {
		if node.Resource != nil && reachable[node.ID] {
			estimate.ResourceMicro += node.Resource.Ref.PriceMicro
		}
	}

	if job.StorageEnabled() {
		estimate.StorageMicro = StorageFeeMicro
	}

	estimate.TotalMicro = estimate.ResourceMicro + estimate.PlatformMicro + estimate.StorageMicro

	return estimate
}

// InsufficientBalance reports whether the total exceeds the available balance.
// The check blocks run submission but never alters the computed total.
func (e Estimate) InsufficientBalance(balanceMicro int64) bool {
	return e.TotalMicro > balanceMicro
}

// FormatMicro renders a smallest-unit amount as a decimal currency string
// with at least two decimals, e.g. 400000 -> "0.40", 123456 -> "0.123456".
func FormatMicro(amountMicro int64) string {
	sign := ""
	if amountMicro < 0 {
		sign = "-"
		amountMicro = -amountMicro
	}

	text := fmt.Sprintf("%d.%06d", amountMicro/MicroUnit, amountMicro%MicroUnit)

	for strings.HasSuffix(text, "0") && !strings.HasSuffix(text, ".00") {
		trimmed := strings.TrimSuffix(text, "0")
		if len(trimmed)-strings.IndexByte(trimmed, '.') <= 2 {
			break
		}

		text = trimmed
	}

	return sign + text
}
