// Package file provides file-based persistence for jobs, one JSON document
// per job id.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root string
}

// NewPersistence creates a file persistence rooted at the given directory.
// Accepts a plain path or a file:// URL.
func NewPersistence(root string) *Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

func (fp *Persistence) jobsDir() string {
	return filepath.Join(fp.root, "jobs")
}

func (fp *Persistence) jobPath(id string) string {
	return filepath.Join(fp.jobsDir(), id+".json")
}

// Jobs returns every stored job, normalized on load.
func (fp *Persistence) Jobs(ctx context.Context) ([]*models.Job, error) {
	entries, err := fs.Glob(os.DirFS(fp.jobsDir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list job files: %w", err)
	}

	jobs := make([]*models.Job, 0, len(entries))

	for _, entry := range entries {
		job, err := fp.JobByID(ctx, strings.TrimSuffix(entry, ".json"))
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}

// JobByID loads one job. The graph invariants are re-established here, at the
// load boundary: stale references and blank workflow input names never reach
// callers.
func (fp *Persistence) JobByID(_ context.Context, id string) (*models.Job, error) {
	payload, err := os.ReadFile(fp.jobPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.NewJobError("JobByID", id, persistence.ErrJobNotFound)
		}

		return nil, persistence.NewJobError("JobByID", id, err)
	}

	var job models.Job

	err = json.Unmarshal(payload, &job)
	if err != nil {
		return nil, persistence.NewJobError("JobByID", id, err)
	}

	job.Normalize()

	return &job, nil
}

// SaveJob writes the job document atomically via a temp file rename.
func (fp *Persistence) SaveJob(_ context.Context, job *models.Job) error {
	err := os.MkdirAll(fp.jobsDir(), 0o755)
	if err != nil {
		return persistence.NewJobError("SaveJob", job.ID, err)
	}

	payload, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return persistence.NewJobError("SaveJob", job.ID, err)
	}

	tmp := fp.jobPath(job.ID) + ".tmp"

	err = os.WriteFile(tmp, payload, 0o644)
	if err != nil {
		return persistence.NewJobError("SaveJob", job.ID, err)
	}

	err = os.Rename(tmp, fp.jobPath(job.ID))
	if err != nil {
		return persistence.NewJobError("SaveJob", job.ID, err)
	}

	return nil
}

// DeleteJob removes the job document.
func (fp *Persistence) DeleteJob(_ context.Context, id string) error {
	err := os.Remove(fp.jobPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return persistence.NewJobError("DeleteJob", id, persistence.ErrJobNotFound)
		}

		return persistence.NewJobError("DeleteJob", id, err)
	}

	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup; nothing to do for files.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}
