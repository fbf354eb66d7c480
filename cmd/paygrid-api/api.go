// Package main provides the Paygrid API server implementation.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/paygrid/paygrid/pkg/catalog"
	"github.com/paygrid/paygrid/pkg/eventbus"
	"github.com/paygrid/paygrid/pkg/paramstore"
	"github.com/paygrid/paygrid/pkg/persistence"
	"github.com/paygrid/paygrid/pkg/run"
	"github.com/paygrid/paygrid/pkg/services"
	"github.com/paygrid/paygrid/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	catalog     catalog.Catalog
	params      paramstore.Store
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	resourceCatalog catalog.Catalog,
	params paramstore.Store,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		catalog:     resourceCatalog,
		params:      params,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	jobService := services.NewJob(a.persistence)
	tracker := run.NewTracker()

	// Submission settlement is an external boundary; runs are accepted as-is
	// once the plan validates.
	submitter := run.SubmitterFunc(func(_ context.Context, _ *run.Plan) error {
		return nil
	})

	runService := run.NewService(a.logger, submitter, a.eventBus, tracker)

	handlers := web.NewAPIHandlers(jobService, runService, tracker, a.catalog, a.params, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Paygrid API")
	})

	j := app.Group("/jobs")
	j.Get("/", handlers.GetJobs)
	j.Post("/", handlers.CreateJob)
	j.Post("/import", handlers.ImportJob)
	j.Get("/:id", handlers.GetJob)
	j.Put("/:id", handlers.UpdateJob)
	j.Delete("/:id", handlers.DeleteJob)

	// Node and edge endpoints:
	j.Post("/:id/nodes", handlers.CreateNode)
	j.Put("/:id/nodes/:nodeId", handlers.UpdateNode)
	j.Delete("/:id/nodes/:nodeId", handlers.DeleteNode)
	j.Put("/:id/nodes/:nodeId/inputs/:field", handlers.SetNodeInput)
	j.Post("/:id/edges", handlers.CreateEdge)
	j.Delete("/:id/edges/:edgeId", handlers.DeleteEdge)

	// Run endpoints:
	j.Post("/:id/plan", handlers.PreviewPlan)
	j.Post("/:id/runs", handlers.ConfirmRun)
	j.Post("/:id/runs/cancel", handlers.CancelRun)
	j.Get("/:id/runs/current", handlers.GetRunStatus)

	// Workflow parameter endpoints:
	j.Get("/:id/params", handlers.GetParams)
	j.Put("/:id/params", handlers.SaveParams)

	r := app.Group("/resources")
	r.Get("/", handlers.GetResources)
	r.Get("/:id", handlers.GetResource)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
