package main

import (
	"context"
	"log/slog"
	"os"

	"listingmanager/config"
	"listingmanager/internal/delivery"
	"listingmanager/internal/delivery/ops"
	"listingmanager/internal/delivery/scheduler"
	"listingmanager/internal/infra/fleet"
	logs "listingmanager/internal/infra/log"
	"listingmanager/internal/infra/marketplace"
	"listingmanager/internal/infra/metrics"
	"listingmanager/internal/infra/pubsub"
	"listingmanager/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		metrics.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			marketplace.NewClient,
			fleet.NewClient,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewFulfillmentService,
			impl.NewLivenessService,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			scheduler.NewScheduler,
			func(s *scheduler.Scheduler) ops.TaskTrigger { return s },
			fx.Annotate(
				scheduler.NewDelivery,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				ops.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start delivery", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
