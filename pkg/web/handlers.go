// Package web provides HTTP handlers and REST API endpoints for job management.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/paygrid/paygrid/pkg/catalog"
	"github.com/paygrid/paygrid/pkg/graph"
	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/paramstore"
	"github.com/paygrid/paygrid/pkg/persistence"
	"github.com/paygrid/paygrid/pkg/run"
	"github.com/paygrid/paygrid/pkg/services"
)

type APIHandlers struct {
	jobService *services.Job
	runService *run.Service
	tracker    *run.Tracker
	catalog    catalog.Catalog
	params     paramstore.Store
	validator  *validator.Validate
}

func NewAPIHandlers(
	jobService *services.Job,
	runService *run.Service,
	tracker *run.Tracker,
	resourceCatalog catalog.Catalog,
	params paramstore.Store,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		jobService: jobService,
		runService: runService,
		tracker:    tracker,
		catalog:    resourceCatalog,
		params:     params,
		validator:  validator,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.jobService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Paygrid API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Paygrid API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetJobs(c fiber.Ctx) error {
	jobs, err := h.jobService.List(c.Context(), c.Query("owner"))
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"jobs":        jobs,
		"total_count": len(jobs),
	})
}

func (h *APIHandlers) GetJob(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	job, err := h.jobService.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsJobNotFound(err) {
			return notFound(c, "Job not found")
		}

		return internalError(c, err)
	}

	return c.JSON(job)
}

func (h *APIHandlers) CreateJob(c fiber.Ctx) error {
	var req CreateJobRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.jobService.Create(c.Context(), req.Name, req.Description, req.Owner)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateJob(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	var job models.Job
	if err := c.Bind().JSON(&job); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.jobService.Update(c.Context(), id, &job)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteJob(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	err := h.jobService.Delete(c.Context(), id)
	if err != nil {
		if persistence.IsJobNotFound(err) {
			return notFound(c, "Job not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ImportJob(c fiber.Ctx) error {
	owner := c.Query("owner")
	if owner == "" {
		return badRequest(c, "owner query parameter is required")
	}

	imported, err := h.jobService.Import(c.Context(), c.Body(), owner)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(imported)
}

func (h *APIHandlers) CreateNode(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.jobService.AddNode(c.Context(), id, req.ToNode())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *APIHandlers) UpdateNode(c fiber.Ctx) error {
	id := c.Params("id")
	nodeID := c.Params("nodeId")

	if id == "" || nodeID == "" {
		return badRequest(c, "Job ID and node ID are required")
	}

	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.jobService.UpdateNode(c.Context(), id, nodeID, req.ToNode())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(job)
}

func (h *APIHandlers) DeleteNode(c fiber.Ctx) error {
	id := c.Params("id")
	nodeID := c.Params("nodeId")

	if id == "" || nodeID == "" {
		return badRequest(c, "Job ID and node ID are required")
	}

	job, err := h.jobService.DeleteNode(c.Context(), id, nodeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(job)
}

func (h *APIHandlers) CreateEdge(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	var req CreateEdgeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.jobService.Connect(c.Context(), id, req.Source, req.Target)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *APIHandlers) DeleteEdge(c fiber.Ctx) error {
	id := c.Params("id")
	edgeID := c.Params("edgeId")

	if id == "" || edgeID == "" {
		return badRequest(c, "Job ID and edge ID are required")
	}

	job, err := h.jobService.Disconnect(c.Context(), id, edgeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(job)
}

func (h *APIHandlers) SetNodeInput(c fiber.Ctx) error {
	id := c.Params("id")
	nodeID := c.Params("nodeId")
	field := c.Params("field")

	if id == "" || nodeID == "" || field == "" {
		return badRequest(c, "Job ID, node ID and field name are required")
	}

	var req SetInputRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	input := models.ConfiguredInput{
		Kind:         models.InputKind(req.Kind),
		Value:        req.Value,
		SourceNodeID: req.SourceNodeID,
		SourceField:  req.SourceField,
	}

	job, err := h.jobService.SetInput(c.Context(), id, nodeID, field, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(job)
}

// PreviewPlan computes the plan for a prospective run without submitting it.
// The response always carries the plan; a validation report rides along when
// the run would be blocked.
func (h *APIHandlers) PreviewPlan(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	req, job, err := h.parsePlanRequest(c, id)
	if err != nil {
		return err
	}

	plan, buildErr := run.Build(job, activeFrom(req.TriggerIDs), req.WorkflowValues, req.BalanceMicro)
	if buildErr != nil {
		return handleRunError(c, nil, buildErr)
	}

	response := fiber.Map{"plan": plan}
	if verr := plan.Validate(); verr != nil {
		response["validation"] = fiber.Map{
			"missing_inputs": verr.Missing,
			"cycle_node_ids": verr.CycleNodeIDs,
			"insufficient":   verr.Insufficient,
		}
	}

	return c.JSON(response)
}

func (h *APIHandlers) ConfirmRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	req, job, err := h.parsePlanRequest(c, id)
	if err != nil {
		return err
	}

	plan, runID, confirmErr := h.runService.ConfirmRun(
		c.Context(), job, activeFrom(req.TriggerIDs), req.WorkflowValues, req.BalanceMicro)
	if confirmErr != nil {
		return handleRunError(c, plan, confirmErr)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"run_id": runID,
		"plan":   plan,
	})
}

func (h *APIHandlers) CancelRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	if err := h.runService.Cancel(c.Context(), id); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"run_id":   h.tracker.RunID(),
		"statuses": h.tracker.Snapshot(),
	})
}

func (h *APIHandlers) GetRunStatus(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"run_id":   h.tracker.RunID(),
		"statuses": h.tracker.Snapshot(),
	})
}

func (h *APIHandlers) GetResources(c fiber.Ctx) error {
	refs, err := h.catalog.Resources(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"resources": refs,
	})
}

func (h *APIHandlers) GetResource(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Resource ID is required")
	}

	ref, err := h.catalog.Resource(c.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrResourceNotFound) {
			return notFound(c, "Resource not found")
		}

		return internalError(c, err)
	}

	return c.JSON(ref)
}

func (h *APIHandlers) GetParams(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	values, err := h.params.Load(c.Context(), id)
	if err != nil {
		if errors.Is(err, paramstore.ErrNotFound) {
			return c.JSON(fiber.Map{"values": map[string]any{}})
		}

		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"values": values})
}

func (h *APIHandlers) SaveParams(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Job ID is required")
	}

	var req SaveParamsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.params.Save(c.Context(), id, req.Values); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"values": req.Values})
}

// parsePlanRequest decodes the plan body, loads the job and verifies the
// requested trigger IDs exist on it.
func (h *APIHandlers) parsePlanRequest(c fiber.Ctx, jobID string) (*PlanRequest, *models.Job, error) {
	var req PlanRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return nil, nil, badRequest(c, "Invalid JSON format")
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return nil, nil, badRequest(c, err.Error())
	}

	job, err := h.jobService.FetchByID(c.Context(), jobID)
	if err != nil {
		if persistence.IsJobNotFound(err) {
			return nil, nil, notFound(c, "Job not found")
		}

		return nil, nil, internalError(c, err)
	}

	for _, triggerID := range req.TriggerIDs {
		node := job.Node(triggerID)
		if node == nil || node.Type != models.NodeTypeTrigger {
			return nil, nil, badRequest(c, "Unknown trigger node: "+triggerID)
		}
	}

	return &req, job, nil
}

func activeFrom(triggerIDs []string) graph.ActiveTriggers {
	active := graph.ActiveTriggers{}
	for _, id := range triggerIDs {
		active.Select(id)
	}

	return active
}
