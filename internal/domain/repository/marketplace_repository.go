// Package repository defines the interfaces of the remote data sources the
// listing manager works against.
package repository

import (
	"context"

	"listingmanager/internal/domain/entity"
)

// MarketplaceRepository is the store side: notifications, orders and listings.
type MarketplaceRepository interface {
	// ListUnreadNotifications returns the notifications not yet marked read, in store order.
	ListUnreadNotifications(ctx context.Context) ([]*entity.Notification, error)

	// FulfillOrder marks an order fulfilled and delivers note to the buyer.
	FulfillOrder(ctx context.Context, orderID, note string) error

	// MarkNotificationRead flags a notification as handled.
	MarkNotificationRead(ctx context.Context, notificationID string) error

	// ListListings returns every active listing in the store.
	ListListings(ctx context.Context) ([]*entity.Listing, error)
}
