package impl

import (
	"context"
	"log/slog"
	"time"

	"listingmanager/config"
	deliverycontext "listingmanager/internal/delivery/context"
	domainerrors "listingmanager/internal/domain/errors"
	"listingmanager/internal/domain/repository"
	"listingmanager/internal/domain/service"
	"listingmanager/internal/errors"
	"listingmanager/internal/usecase"

	"go.uber.org/fx"
)

type livenessService struct {
	marketplace repository.MarketplaceRepository
	fleet       repository.FleetRepository
	registry    rentedRegistry
	publisher   service.EventPublisher
	logger      *slog.Logger

	maxDelay    time.Duration
	graceBuffer time.Duration
	stopAtFirst bool
	now         func() time.Time
}

// LivenessServiceParams holds dependencies for LivenessService, injected by Fx.
type LivenessServiceParams struct {
	fx.In

	Marketplace repository.MarketplaceRepository
	Fleet       repository.FleetRepository
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewLivenessService creates a new liveness service instance
func NewLivenessService(params LivenessServiceParams) usecase.LivenessUsecase {
	return newLivenessService(params, time.Now)
}

func newLivenessService(params LivenessServiceParams, now func() time.Time) *livenessService {
	return &livenessService{
		marketplace: params.Marketplace,
		fleet:       params.Fleet,
		registry:    rentedRegistry{fleet: params.Fleet},
		publisher:   params.Publisher,
		logger:      params.Logger,
		maxDelay:    params.Config.Liveness.MaxDelay,
		graceBuffer: params.Config.Liveness.GraceBuffer,
		stopAtFirst: params.Config.Sweep.StopAtFirst,
		now:         now,
	}
}

func (s *livenessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// sweepItem checks one item, returning the action taken or nil.
type sweepItem func(ctx context.Context) (*usecase.SweepAction, error)

// sweep runs items in order. A transient failure abandons the cycle since the
// remaining items would hit the same unavailable server. Other failures are
// collected and the sweep moves on, unless stopAtFirst is set, in which case
// the sweep also ends after the first action.
func (s *livenessService) sweep(ctx context.Context, items []sweepItem) (*usecase.SweepResult, error) {
	result := &usecase.SweepResult{}
	var errs []error

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		result.Checked++
		action, err := item(ctx)
		if err != nil {
			if s.stopAtFirst || domainerrors.IsTransient(err) {
				return result, errors.Join(append(errs, err)...)
			}
			errs = append(errs, err)

			continue
		}
		if action == nil {
			continue
		}

		result.Actions = append(result.Actions, *action)
		if s.stopAtFirst {
			break
		}
	}

	return result, errors.Join(errs...)
}

// removeListing tears down a device's listing, tolerating one that is already gone.
func (s *livenessService) removeListing(ctx context.Context, deviceID, listingRef string) error {
	if listingRef == "" {
		return domainerrors.ErrMissingListingRef.WithDetails(deviceID)
	}

	err := s.fleet.RemoveListing(ctx, listingRef)
	if errors.Is(err, domainerrors.ErrListingNotFound) {
		s.log(ctx).Info("Listing already removed",
			slog.String("device_id", deviceID),
			slog.String("listing_ref", listingRef),
		)

		return nil
	}

	return errors.Wrapf(err, "remove listing %s", listingRef)
}
