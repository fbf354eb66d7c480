package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/paygrid/paygrid/pkg/persistence"
	"github.com/paygrid/paygrid/pkg/persistence/file"
	"github.com/paygrid/paygrid/pkg/persistence/postgresql"
)

// NewPersistence creates a persistence backend from the database URL scheme.
// Anything that is not postgres is treated as a file root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parsePersistenceProvider(databaseURL) {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to initialize postgresql persistence: %w", err))
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return provider
}
