package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paygrid/paygrid/pkg/paramstore"
)

const paramTTL = 30 * 24 * time.Hour

// NewParamStore creates a workflow parameter store. An empty URL falls back
// to the in-memory store, which does not survive restarts.
func NewParamStore(ctx context.Context, redisURL string) paramstore.Store {
	if redisURL == "" {
		return paramstore.NewMemory()
	}

	addr := strings.TrimPrefix(redisURL, "redis://")

	store, err := paramstore.NewRedis(ctx, addr, "", 0, paramTTL)
	if err != nil {
		panic(fmt.Errorf("failed to connect param store: %w", err))
	}

	return store
}
