package impl

import (
	"context"
	"log/slog"
	"time"

	"listingmanager/config"
	deliverycontext "listingmanager/internal/delivery/context"
	"listingmanager/internal/domain/entity"
	domainerrors "listingmanager/internal/domain/errors"
	"listingmanager/internal/domain/repository"
	"listingmanager/internal/domain/service"
	"listingmanager/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type fulfillmentService struct {
	marketplace repository.MarketplaceRepository
	fleet       repository.FleetRepository
	registry    rentedRegistry
	publisher   service.EventPublisher
	logger      *slog.Logger

	sshHost string
	tiers   entity.LeaseTiers
	tier    string
	now     func() time.Time
}

// FulfillmentServiceParams holds dependencies for FulfillmentService, injected by Fx.
type FulfillmentServiceParams struct {
	fx.In

	Marketplace repository.MarketplaceRepository
	Fleet       repository.FleetRepository
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewFulfillmentService creates a new fulfillment service instance.
// An unknown lease tier is a configuration error.
func NewFulfillmentService(params FulfillmentServiceParams) (usecase.FulfillmentUsecase, error) {
	return newFulfillmentService(params, time.Now)
}

func newFulfillmentService(params FulfillmentServiceParams, now func() time.Time) (*fulfillmentService, error) {
	tiers := entity.DefaultLeaseTiers().Merge(params.Config.Lease.Tiers)
	if _, err := tiers.Duration(params.Config.Lease.Tier); err != nil {
		return nil, errors.Wrap(err, "resolve lease tier")
	}

	return &fulfillmentService{
		marketplace: params.Marketplace,
		fleet:       params.Fleet,
		registry:    rentedRegistry{fleet: params.Fleet},
		publisher:   params.Publisher,
		logger:      params.Logger,
		sshHost:     params.Config.Fulfillment.SSHHost,
		tiers:       tiers,
		tier:        params.Config.Lease.Tier,
		now:         now,
	}, nil
}

func (s *fulfillmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func stepFailed(step string, err error) error {
	return &usecase.StepError{Step: step, Err: err}
}

// FulfillNextOrder runs one fulfillment cycle against the first unread notification
func (s *fulfillmentService) FulfillNextOrder(ctx context.Context) (*usecase.FulfillmentResult, error) {
	notes, err := s.marketplace.ListUnreadNotifications(ctx)
	if err != nil {
		return nil, stepFailed(usecase.StepListNotifications, err)
	}
	if len(notes) == 0 {
		return &usecase.FulfillmentResult{SkipReason: usecase.SkipNoUnread}, nil
	}

	// One order per cycle; the rest wait for the next tick.
	note := notes[0]
	result := &usecase.FulfillmentResult{NotificationID: note.ID, OrderID: note.OrderID}
	if !note.IsOrder() {
		s.log(ctx).Debug("First unread notification is not an order",
			slog.String("notification_id", note.ID),
			slog.String("type", note.Type),
		)
		result.SkipReason = usecase.SkipNotOrder

		return result, nil
	}

	deviceID, err := entity.DeviceIDFromSlug(note.Slug)
	if err != nil {
		return nil, stepFailed(usecase.StepParseSlug, err)
	}
	result.DeviceID = deviceID

	logger := s.log(ctx).With(
		slog.String("order_id", note.OrderID),
		slog.String("device_id", deviceID),
	)
	logger.Info("Fulfilling order")

	public, err := s.fleet.GetDevicePublic(ctx, deviceID)
	if err != nil {
		return nil, stepFailed(usecase.StepFetchDevicePublic, err)
	}

	if public.PrivateRef == "" {
		return nil, stepFailed(usecase.StepFetchDevicePrivate, domainerrors.ErrMissingPrivateRef.WithDetails(deviceID))
	}
	private, err := s.fleet.GetDevicePrivate(ctx, public.PrivateRef)
	if err != nil {
		return nil, stepFailed(usecase.StepFetchDevicePrivate, err)
	}

	if err := s.marketplace.FulfillOrder(ctx, note.OrderID, private.AccessNote(s.sshHost)); err != nil {
		return nil, stepFailed(usecase.StepFulfillOrder, err)
	}

	if err := s.marketplace.MarkNotificationRead(ctx, note.ID); err != nil {
		return nil, stepFailed(usecase.StepMarkRead, err)
	}

	now := s.now()
	expiration, err := s.tiers.ExpiresAt(s.tier, now)
	if err != nil {
		return nil, stepFailed(usecase.StepUpdateExpiration, err)
	}
	if err := s.fleet.UpdateExpiration(ctx, public.ID, expiration); err != nil {
		return nil, stepFailed(usecase.StepUpdateExpiration, err)
	}
	result.Expiration = expiration

	if _, err := s.registry.ensure(ctx, public.ID); err != nil {
		return nil, stepFailed(usecase.StepRegisterRented, err)
	}

	if public.ListingRef == "" {
		return nil, stepFailed(usecase.StepRemoveListing, domainerrors.ErrMissingListingRef.WithDetails(deviceID))
	}
	if err := s.fleet.RemoveListing(ctx, public.ListingRef); err != nil {
		if !errors.Is(err, domainerrors.ErrListingNotFound) {
			return nil, stepFailed(usecase.StepRemoveListing, err)
		}
		logger.Info("Listing already removed", slog.String("listing_ref", public.ListingRef))
	}

	result.Fulfilled = true
	logger.Info("Order fulfilled",
		slog.String("lease_tier", s.tier),
		slog.Time("expiration", expiration),
	)

	publishEvent(ctx, s.publisher, logger, &service.LifecycleEvent{
		Type:       service.EventOrderFulfilled,
		DeviceID:   public.ID,
		OrderID:    note.OrderID,
		ListingRef: public.ListingRef,
		Expiration: expiration,
	}, now)

	return result, nil
}
