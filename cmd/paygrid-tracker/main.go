package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/paygrid/paygrid/pkg/cmd"
	"github.com/paygrid/paygrid/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "paygrid-tracker",
		EnableShellCompletion: true,
		Usage:                 "Track node execution status from run progress events",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "tracker-id",
				Aliases: []string{"id"},
				Usage:   "Custom tracker ID (auto-generated if not provided)",
				Value:   "",
				Sources: cli.EnvVars("TRACKER_ID"),
			},
			&cli.StringFlag{
				Name:     "event-bus",
				Usage:    "Event bus type (kafka, gochannel)",
				Required: true,
				Sources:  cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			trackerID := command.String("tracker-id")
			if trackerID == "" {
				trackerID = "tracker-" + uuid.New().String()[:8]
			}

			logger := log.WithModule("paygrid-tracker").With("tracker_id", trackerID)

			logger.InfoContext(ctx, "Initializing Paygrid Tracker")

			eventBus := cmd.NewEventBus(command.String("event-bus"), "paygrid-tracker", logger)
			defer func() {
				err := eventBus.Close()
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			worker := NewTrackerWorker(trackerID, eventBus, logger)

			err := worker.Start(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start tracker worker", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
