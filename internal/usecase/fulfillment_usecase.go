// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"
)

// Fulfillment workflow step names, reported by StepError.
const (
	StepListNotifications  = "list_notifications"
	StepParseSlug          = "parse_slug"
	StepFetchDevicePublic  = "fetch_device_public"
	StepFetchDevicePrivate = "fetch_device_private"
	StepFulfillOrder       = "fulfill_order"
	StepMarkRead           = "mark_notification_read"
	StepUpdateExpiration   = "update_expiration"
	StepRegisterRented     = "register_rented"
	StepRemoveListing      = "remove_listing"
)

// Reasons a fulfillment cycle finished without handling an order.
const (
	SkipNoUnread = "no unread notifications"
	SkipNotOrder = "notification is not an order"
)

// FulfillmentResult describes what one fulfillment cycle did.
type FulfillmentResult struct {
	NotificationID string
	OrderID        string
	DeviceID       string
	Fulfilled      bool
	SkipReason     string    // Set when Fulfilled is false
	Expiration     time.Time // Lease end written to the device
}

// StepError wraps the failure of one fulfillment step. Steps after the failing
// one are not attempted.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FulfillmentUsecase turns marketplace orders into device leases
type FulfillmentUsecase interface {
	// FulfillNextOrder handles the first unread notification, if it is an order.
	// At most one order is fulfilled per call.
	FulfillNextOrder(ctx context.Context) (*FulfillmentResult, error)
}
