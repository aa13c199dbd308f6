// Package marketplace implements repository.MarketplaceRepository against an
// OpenBazaar-style store API.
package marketplace

import (
	"context"
	"log/slog"
	"time"

	"listingmanager/config"
	deliverycontext "listingmanager/internal/delivery/context"
	"listingmanager/internal/domain/entity"
	"listingmanager/internal/domain/repository"
	"listingmanager/internal/infra/auth"
	"listingmanager/internal/infra/remote"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type notificationsResponse struct {
	Notifications []notificationEnvelope `json:"notifications"`
	Total         int                    `json:"total"`
	Unread        int                    `json:"unread"`
}

type notificationEnvelope struct {
	Notification struct {
		NotificationID string `json:"notificationId"`
		Type           string `json:"type"`
		Slug           string `json:"slug"`
		OrderID        string `json:"orderId"`
	} `json:"notification"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

type listingResponse struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Expiration time.Time `json:"expiration"`
}

type fulfillmentRequest struct {
	OrderID string `json:"orderId"`
	Note    string `json:"note"`
}

type marketplaceClient struct {
	client *remote.Client
	logger *slog.Logger
}

// ClientParams holds dependencies for the marketplace client, injected by Fx
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds the marketplace client. Bad credential material fails
// construction, which aborts startup.
func NewClient(params ClientParams) (repository.MarketplaceRepository, error) {
	cfg := params.Config.Marketplace

	credential, err := auth.NewBasicCredential(cfg.Username, cfg.Password)
	if err != nil {
		return nil, errors.Wrap(err, "build marketplace credential")
	}

	return newClient(cfg.BaseURL, cfg.Timeout, credential, params.Logger), nil
}

func newClient(baseURL string, timeout time.Duration, credential string, logger *slog.Logger) *marketplaceClient {
	return &marketplaceClient{
		client: remote.NewClient(baseURL, timeout, logger, remote.WithHeader("Authorization", credential)),
		logger: logger,
	}
}

func (c *marketplaceClient) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// ListUnreadNotifications fetches all notifications and keeps the unread ones
func (c *marketplaceClient) ListUnreadNotifications(ctx context.Context) ([]*entity.Notification, error) {
	var resp notificationsResponse
	if err := c.client.Get(ctx, c.client.URL("notifications"), &resp); err != nil {
		return nil, errors.Wrap(err, "get notifications")
	}

	if resp.Unread == 0 {
		return []*entity.Notification{}, nil
	}

	unread := make([]*entity.Notification, 0, resp.Unread)
	for _, n := range resp.Notifications {
		if n.Read {
			continue
		}
		unread = append(unread, &entity.Notification{
			ID:        n.Notification.NotificationID,
			Type:      n.Notification.Type,
			Read:      n.Read,
			Slug:      n.Notification.Slug,
			OrderID:   n.Notification.OrderID,
			Timestamp: n.Timestamp,
		})
	}

	return unread, nil
}

// FulfillOrder posts the access note against the order
func (c *marketplaceClient) FulfillOrder(ctx context.Context, orderID, note string) error {
	body := fulfillmentRequest{OrderID: orderID, Note: note}
	if err := c.client.Post(ctx, c.client.URL("orderfulfillment"), body, nil); err != nil {
		return errors.Wrapf(err, "fulfill order %s", orderID)
	}

	c.log(ctx).Info("Order marked as fulfilled", slog.String("order_id", orderID))

	return nil
}

// MarkNotificationRead flags the notification as read
func (c *marketplaceClient) MarkNotificationRead(ctx context.Context, notificationID string) error {
	target := c.client.URL("marknotificationasread", notificationID)
	if err := c.client.Post(ctx, target, struct{}{}, nil); err != nil {
		return errors.Wrapf(err, "mark notification %s read", notificationID)
	}

	c.log(ctx).Info("Notification marked as read", slog.String("notification_id", notificationID))

	return nil
}

// ListListings fetches every listing in the store
func (c *marketplaceClient) ListListings(ctx context.Context) ([]*entity.Listing, error) {
	var resp []listingResponse
	if err := c.client.Get(ctx, c.client.URL("listings"), &resp); err != nil {
		return nil, errors.Wrap(err, "get listings")
	}

	listings := make([]*entity.Listing, 0, len(resp))
	for _, l := range resp {
		listings = append(listings, &entity.Listing{
			Slug:       l.Slug,
			Title:      l.Title,
			Expiration: l.Expiration,
		})
	}

	return listings, nil
}
