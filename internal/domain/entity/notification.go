// Package entity contains the core business objects of the listing manager.
package entity

import "time"

// NotificationTypeOrder marks a notification raised by a new purchase.
const NotificationTypeOrder = "order"

// Notification represents a marketplace notification as seen by the listing manager.
type Notification struct {
	ID        string    `json:"id"`        // Marketplace notification identifier.
	Type      string    `json:"type"`      // Notification type ("order" for purchases).
	Read      bool      `json:"read"`      // Whether the notification was already handled.
	Slug      string    `json:"slug"`      // Slug of the purchased listing; ends in the device ID.
	OrderID   string    `json:"order_id"`  // Marketplace order the notification refers to.
	Timestamp time.Time `json:"timestamp"` // When the marketplace raised the notification.
}

// IsOrder reports whether the notification announces a purchase.
func (n *Notification) IsOrder() bool {
	return n.Type == NotificationTypeOrder
}
