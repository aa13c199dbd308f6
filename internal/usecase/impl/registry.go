package impl

import (
	"context"
	"slices"

	"listingmanager/internal/domain/repository"

	"github.com/pkg/errors"
)

// rentedRegistry gives set semantics to the fleet's rented devices list.
type rentedRegistry struct {
	fleet repository.FleetRepository
}

// ensure adds deviceID unless it is already present. It reports whether a
// remote insert was issued.
func (r rentedRegistry) ensure(ctx context.Context, deviceID string) (bool, error) {
	members, err := r.fleet.ListRentedDevices(ctx)
	if err != nil {
		return false, errors.Wrap(err, "list rented devices")
	}
	if slices.Contains(members, deviceID) {
		return false, nil
	}

	if err := r.fleet.AddRentedDevice(ctx, deviceID); err != nil {
		return false, errors.Wrap(err, "add rented device")
	}

	return true, nil
}

// release removes deviceID if present; removing a non-member is a no-op.
func (r rentedRegistry) release(ctx context.Context, deviceID string) (bool, error) {
	members, err := r.fleet.ListRentedDevices(ctx)
	if err != nil {
		return false, errors.Wrap(err, "list rented devices")
	}
	if !slices.Contains(members, deviceID) {
		return false, nil
	}

	if err := r.fleet.RemoveRentedDevice(ctx, deviceID); err != nil {
		return false, errors.Wrap(err, "remove rented device")
	}

	return true, nil
}
