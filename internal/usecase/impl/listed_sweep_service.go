package impl

import (
	"context"
	"log/slog"

	"listingmanager/internal/domain/entity"
	"listingmanager/internal/domain/service"
	"listingmanager/internal/errors"
	"listingmanager/internal/usecase"
)

// SweepListedDevices removes listings backed by silent or expired devices
func (s *livenessService) SweepListedDevices(ctx context.Context) (*usecase.SweepResult, error) {
	listings, err := s.marketplace.ListListings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list listings")
	}

	items := make([]sweepItem, 0, len(listings))
	for _, listing := range listings {
		items = append(items, func(ctx context.Context) (*usecase.SweepAction, error) {
			action, err := s.checkListing(ctx, listing)

			return action, errors.Wrapf(err, "listing %s", listing.Slug)
		})
	}

	return s.sweep(ctx, items)
}

func (s *livenessService) checkListing(ctx context.Context, listing *entity.Listing) (*usecase.SweepAction, error) {
	deviceID, err := listing.DeviceID()
	if err != nil {
		return nil, err
	}

	public, err := s.fleet.GetDevicePublic(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	logger := s.log(ctx).With(
		slog.String("device_id", deviceID),
		slog.String("slug", listing.Slug),
	)
	if !public.HasCheckin() {
		logger.Warn("Listed device has no check-in time, skipping inactivity check")
	}
	if !public.HasExpiration() {
		logger.Warn("Listed device has no expiration, skipping expiry check")
	}

	var reason string
	switch {
	case public.IsUnresponsive(now, s.maxDelay):
		reason = usecase.ReasonInactive
		logger.Info("Listed device is unresponsive",
			slog.Duration("silent_for", public.SilentFor(now)),
			slog.Duration("max_delay", s.maxDelay),
		)
		if err := s.fleet.UpdateExpiration(ctx, deviceID, now); err != nil {
			return nil, errors.Wrap(err, "force expiration")
		}
	case public.IsPastGrace(now, s.graceBuffer):
		reason = usecase.ReasonExpired
		logger.Info("Listed device is past its expiration",
			slog.Time("expiration", public.Expiration),
			slog.Duration("grace_buffer", s.graceBuffer),
		)
	default:
		return nil, nil
	}

	if err := s.removeListing(ctx, deviceID, public.ListingRef); err != nil {
		return nil, err
	}

	logger.Info("Listing removed", slog.String("reason", reason))

	publishEvent(ctx, s.publisher, logger, &service.LifecycleEvent{
		Type:       service.EventListingRemoved,
		DeviceID:   deviceID,
		ListingRef: public.ListingRef,
		Reason:     reason,
	}, now)

	return &usecase.SweepAction{DeviceID: deviceID, ListingRef: public.ListingRef, Reason: reason}, nil
}
