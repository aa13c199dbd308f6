package impl

import (
	"context"
	"log/slog"

	"listingmanager/internal/domain/service"
	"listingmanager/internal/errors"
	"listingmanager/internal/usecase"
)

// SweepRentedDevices evicts rented devices that stopped checking in
func (s *livenessService) SweepRentedDevices(ctx context.Context) (*usecase.SweepResult, error) {
	ids, err := s.fleet.ListRentedDevices(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list rented devices")
	}

	items := make([]sweepItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, func(ctx context.Context) (*usecase.SweepAction, error) {
			action, err := s.checkRentedDevice(ctx, id)

			return action, errors.Wrapf(err, "rented device %s", id)
		})
	}

	return s.sweep(ctx, items)
}

func (s *livenessService) checkRentedDevice(ctx context.Context, deviceID string) (*usecase.SweepAction, error) {
	public, err := s.fleet.GetDevicePublic(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	logger := s.log(ctx).With(slog.String("device_id", deviceID))
	if !public.HasCheckin() {
		logger.Warn("Rented device has no check-in time, skipping")

		return nil, nil
	}

	now := s.now()
	if !public.IsUnresponsive(now, s.maxDelay) {
		return nil, nil
	}

	logger.Info("Rented device is unresponsive",
		slog.Duration("silent_for", public.SilentFor(now)),
		slog.Duration("max_delay", s.maxDelay),
	)

	if err := s.fleet.UpdateExpiration(ctx, deviceID, now); err != nil {
		return nil, errors.Wrap(err, "force expiration")
	}
	if _, err := s.registry.release(ctx, deviceID); err != nil {
		return nil, err
	}

	logger.Info("Device removed from rented devices due to inactivity")

	publishEvent(ctx, s.publisher, logger, &service.LifecycleEvent{
		Type:       service.EventDeviceEvicted,
		DeviceID:   deviceID,
		ListingRef: public.ListingRef,
		Reason:     usecase.ReasonInactive,
		Expiration: now,
	}, now)

	return &usecase.SweepAction{DeviceID: deviceID, ListingRef: public.ListingRef, Reason: usecase.ReasonInactive}, nil
}
