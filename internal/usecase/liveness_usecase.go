package usecase

import (
	"context"
)

// Reasons a sweep acted on a device.
const (
	ReasonInactive = "inactive"
	ReasonExpired  = "expired"
)

// SweepAction is one device a sweep acted on.
type SweepAction struct {
	DeviceID   string
	ListingRef string
	Reason     string
}

// SweepResult summarises one liveness sweep.
type SweepResult struct {
	Checked int
	Actions []SweepAction
}

// LivenessUsecase reclaims devices that stopped checking in or outlived their listing
type LivenessUsecase interface {
	// SweepRentedDevices evicts rented devices that have been silent longer than the max delay.
	SweepRentedDevices(ctx context.Context) (*SweepResult, error)

	// SweepListedDevices removes listings whose device is silent or whose expiration
	// plus grace buffer has passed.
	SweepListedDevices(ctx context.Context) (*SweepResult, error)
}
