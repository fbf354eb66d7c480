package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/persistence"
)

// ErrJobNotFound is returned when a job is not found.
var ErrJobNotFound = persistence.ErrJobNotFound

// Job provides job graph management on top of the persistence layer.
// All graph mutations load the job, apply the change through the model
// helpers and save the result back.
type Job struct {
	persistence persistence.Persistence
}

// NewJob creates a new job service.
func NewJob(persistence persistence.Persistence) *Job {
	return &Job{
		persistence: persistence,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Job) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List retrieves all jobs, optionally filtered by owner.
func (s *Job) List(ctx context.Context, owner string) ([]*models.Job, error) {
	jobs, err := s.persistence.Jobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	if owner == "" {
		return jobs, nil
	}

	filtered := make([]*models.Job, 0, len(jobs))

	for _, job := range jobs {
		if job.Owner == owner {
			filtered = append(filtered, job)
		}
	}

	return filtered, nil
}

// FetchByID retrieves a job by its ID.
func (s *Job) FetchByID(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.persistence.JobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job == nil {
		return nil, ErrJobNotFound
	}

	return job, nil
}

// Create scaffolds and persists a new job. New jobs always start with a
// trigger node and an output node already connected.
func (s *Job) Create(ctx context.Context, name, description, owner string) (*models.Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError(
			"Create",
			"JOB_NAME_REQUIRED",
			"job name is required",
			ErrJobNameRequired,
		)
	}

	job := models.NewJob(name, owner)
	job.Description = description

	if err := s.persistence.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// Update replaces the stored job graph with the given one, preserving
// identity and creation time.
func (s *Job) Update(ctx context.Context, jobID string, job *models.Job) (*models.Job, error) {
	if job == nil {
		return nil, NewValidationError("Update", "JOB_NIL", "job cannot be nil", ErrJobNil)
	}

	existing, err := s.FetchByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(job.Name) == "" {
		return nil, NewValidationError(
			"Update",
			"JOB_NAME_REQUIRED",
			"job name is required",
			ErrJobNameRequired,
		)
	}

	job.ID = jobID
	job.Owner = existing.Owner
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now().UTC()
	job.Normalize()

	if err := s.validateGraph(job); err != nil {
		return nil, err
	}

	if err := s.persistence.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return job, nil
}

// Delete removes a job by its ID.
func (s *Job) Delete(ctx context.Context, jobID string) error {
	if _, err := s.FetchByID(ctx, jobID); err != nil {
		return err
	}

	if err := s.persistence.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}

// AddNode appends a node to the job graph.
func (s *Job) AddNode(ctx context.Context, jobID string, node *models.Node) (*models.Job, error) {
	if node == nil || !node.Type.Valid() {
		return nil, NewValidationError(
			"AddNode",
			"INVALID_NODE_TYPE",
			fmt.Sprintf("unknown node type %q", nodeType(node)),
			ErrInvalidNodeType,
		)
	}

	return s.mutate(ctx, jobID, func(job *models.Job) error {
		if node.ID == "" {
			node.ID = models.NewNodeID(node.Type)
		}

		return job.AddNode(node)
	})
}

// UpdateNode replaces a node's data in place, keeping its edges.
func (s *Job) UpdateNode(ctx context.Context, jobID, nodeID string, node *models.Node) (*models.Job, error) {
	if node == nil || !node.Type.Valid() {
		return nil, NewValidationError(
			"UpdateNode",
			"INVALID_NODE_TYPE",
			fmt.Sprintf("unknown node type %q", nodeType(node)),
			ErrInvalidNodeType,
		)
	}

	return s.mutate(ctx, jobID, func(job *models.Job) error {
		existing := job.Node(nodeID)
		if existing == nil {
			return models.ErrNodeNotFound
		}

		if existing.Type != node.Type {
			return NewValidationError(
				"UpdateNode",
				"NODE_TYPE_IMMUTABLE",
				"node type cannot be changed",
				ErrInvalidNodeType,
			)
		}

		node.ID = nodeID
		*existing = *node

		return nil
	})
}

// DeleteNode removes a node and every edge touching it.
func (s *Job) DeleteNode(ctx context.Context, jobID, nodeID string) (*models.Job, error) {
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		return job.DeleteNode(nodeID)
	})
}

// Connect adds an edge between two existing nodes.
func (s *Job) Connect(ctx context.Context, jobID, sourceID, targetID string) (*models.Job, error) {
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		_, err := job.Connect(sourceID, targetID)

		return err
	})
}

// Disconnect removes an edge by its ID.
func (s *Job) Disconnect(ctx context.Context, jobID, edgeID string) (*models.Job, error) {
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		job.Disconnect(edgeID)

		return nil
	})
}

// SetInput configures a single input field on a resource node.
func (s *Job) SetInput(
	ctx context.Context,
	jobID, nodeID, field string,
	input models.ConfiguredInput,
) (*models.Job, error) {
	return s.mutate(ctx, jobID, func(job *models.Job) error {
		node := job.Node(nodeID)
		if node == nil {
			return models.ErrNodeNotFound
		}

		if node.Resource == nil {
			return NewValidationError(
				"SetInput",
				"NOT_A_RESOURCE",
				fmt.Sprintf("node %q is not a resource node", nodeID),
				ErrResourceNotInGraph,
			)
		}

		node.Resource.SetInput(field, input)

		return nil
	})
}

// mutate loads the job, applies fn, re-normalizes and persists. Reference
// downgrades happen in Normalize, so deleting a node also clears any
// configured input that pointed at it.
func (s *Job) mutate(ctx context.Context, jobID string, fn func(*models.Job) error) (*models.Job, error) {
	job, err := s.FetchByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := fn(job); err != nil {
		return nil, err
	}

	job.Normalize()
	job.UpdatedAt = time.Now().UTC()

	if err := s.persistence.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	return job, nil
}

// validateGraph enforces the structural invariants a stored job must hold:
// known node types, edges between existing nodes and at least one trigger.
func (s *Job) validateGraph(job *models.Job) error {
	seen := make(map[string]bool, len(job.Nodes))
	hasTrigger := false

	for _, node := range job.Nodes {
		if !node.Type.Valid() {
			return NewValidationError(
				"validateGraph",
				"INVALID_NODE_TYPE",
				fmt.Sprintf("unknown node type %q", node.Type),
				ErrInvalidNodeType,
			)
		}

		seen[node.ID] = true

		if node.Type == models.NodeTypeTrigger {
			hasTrigger = true
		}
	}

	if !hasTrigger {
		return NewValidationError(
			"validateGraph",
			"TRIGGER_REQUIRED",
			"job must have at least one trigger node",
			ErrTriggerNodeRequired,
		)
	}

	for _, edge := range job.Edges {
		if !seen[edge.Source] || !seen[edge.Target] {
			return NewValidationError(
				"validateGraph",
				"INVALID_EDGE",
				fmt.Sprintf("edge %q references a missing node", edge.ID),
				ErrInvalidEdge,
			)
		}
	}

	return nil
}

func nodeType(node *models.Node) models.NodeType {
	if node == nil {
		return ""
	}

	return node.Type
}
