// Package persistence provides the storage abstraction for jobs.
package persistence

import (
	"context"

	"github.com/paygrid/paygrid/pkg/models"
)

type Persistence interface {
	Jobs(ctx context.Context) ([]*models.Job, error)
	JobByID(ctx context.Context, id string) (*models.Job, error)
	SaveJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
