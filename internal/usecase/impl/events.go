package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "listingmanager/internal/delivery/context"
	"listingmanager/internal/domain/service"

	"github.com/google/uuid"
)

// publishEvent stamps and publishes a lifecycle event. Publishing is best
// effort: a failure is logged and never fails the calling workflow.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.LifecycleEvent, now time.Time) {
	event.EventID = uuid.NewString()
	event.CycleID = deliverycontext.GetCycleID(ctx)
	event.OccurredAt = now

	if err := publisher.PublishLifecycleEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish lifecycle event",
			slog.String("type", event.Type),
			slog.String("device_id", event.DeviceID),
			slog.Any("error", err),
		)
	}
}
