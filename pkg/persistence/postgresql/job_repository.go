package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/persistence"
)

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS jobs (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				owner VARCHAR(255) NOT NULL DEFAULT '',
				nodes JSONB NOT NULL DEFAULT '[]',
				edges JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner);
		`,
	}
}

// JobRepository stores job graphs as JSONB documents.
type JobRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewJobRepository(db *sql.DB, logger *slog.Logger) *JobRepository {
	return &JobRepository{db: db, logger: logger}
}

// GetAll returns every job, newest first.
func (r *JobRepository) GetAll(ctx context.Context) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, owner, nodes, edges, created_at, updated_at
		FROM jobs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, persistence.NewJobError("GetAll", "", err)
	}
	defer func() { _ = rows.Close() }()

	jobs := make([]*models.Job, 0)

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, persistence.NewJobError("GetAll", "", err)
		}

		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewJobError("GetAll", "", err)
	}

	return jobs, nil
}

// GetByID returns one job, normalized on load.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, owner, nodes, edges, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewJobError("GetByID", id, persistence.ErrJobNotFound)
		}

		return nil, persistence.NewJobError("GetByID", id, err)
	}

	return job, nil
}

// Save upserts the job document.
func (r *JobRepository) Save(ctx context.Context, job *models.Job) error {
	nodes, err := json.Marshal(job.Nodes)
	if err != nil {
		return persistence.NewJobError("Save", job.ID, err)
	}

	edges, err := json.Marshal(job.Edges)
	if err != nil {
		return persistence.NewJobError("Save", job.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, name, description, owner, nodes, edges, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			owner = EXCLUDED.owner,
			nodes = EXCLUDED.nodes,
			edges = EXCLUDED.edges,
			updated_at = EXCLUDED.updated_at
	`, job.ID, job.Name, job.Description, job.Owner, nodes, edges, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return persistence.NewJobError("Save", job.ID, err)
	}

	return nil
}

// Delete removes the job.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = $1", id)
	if err != nil {
		return persistence.NewJobError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewJobError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.NewJobError("Delete", id, persistence.ErrJobNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		job   models.Job
		nodes []byte
		edges []byte
	)

	err := row.Scan(&job.ID, &job.Name, &job.Description, &job.Owner, &nodes, &edges, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(nodes, &job.Nodes)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(edges, &job.Edges)
	if err != nil {
		return nil, err
	}

	job.Normalize()

	return &job, nil
}
