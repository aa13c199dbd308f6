package repository

import (
	"context"
	"time"

	"listingmanager/internal/domain/entity"
)

// FleetRepository is the device-fleet side: device records, the rented
// devices registry and listing teardown.
type FleetRepository interface {
	// GetDevicePublic retrieves a device's public record.
	// Returns domain ErrDevicePublicNotFound when the record does not exist.
	GetDevicePublic(ctx context.Context, deviceID string) (*entity.DevicePublic, error)

	// GetDevicePrivate retrieves a device's private record by its own identifier.
	// Returns domain ErrDevicePrivateNotFound when the record does not exist.
	GetDevicePrivate(ctx context.Context, privateID string) (*entity.DevicePrivate, error)

	// UpdateExpiration overwrites the expiration of a device's public record.
	UpdateExpiration(ctx context.Context, deviceID string, expiration time.Time) error

	// ListRentedDevices returns the device IDs currently under lease.
	ListRentedDevices(ctx context.Context) ([]string, error)

	// AddRentedDevice inserts a device ID into the rented registry.
	AddRentedDevice(ctx context.Context, deviceID string) error

	// RemoveRentedDevice removes a device ID from the rented registry.
	RemoveRentedDevice(ctx context.Context, deviceID string) error

	// RemoveListing tears down the marketplace listing for a listing contract.
	// Returns domain ErrListingNotFound when it is already gone.
	RemoveListing(ctx context.Context, listingRef string) error
}
