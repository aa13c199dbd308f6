package service

import (
	"context"
	"time"
)

// Lifecycle event types.
const (
	EventOrderFulfilled = "order.fulfilled"
	EventDeviceEvicted  = "device.evicted"
	EventListingRemoved = "listing.removed"
)

// LifecycleEvent records one side effect the listing manager applied to a
// device or listing, for downstream consumers such as billing or refunds.
type LifecycleEvent struct {
	EventID    string    `json:"event_id"`
	CycleID    string    `json:"cycle_id,omitempty"` // For tracing back to the poll cycle
	Type       string    `json:"type"`
	DeviceID   string    `json:"device_id"`
	OrderID    string    `json:"order_id,omitempty"`
	ListingRef string    `json:"listing_ref,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Expiration time.Time `json:"expiration,omitzero"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing lifecycle events to a message queue
type EventPublisher interface {
	// PublishLifecycleEvent publishes a single lifecycle event
	PublishLifecycleEvent(ctx context.Context, event *LifecycleEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
