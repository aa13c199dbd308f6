// Package fleet implements repository.FleetRepository against the
// device-fleet server API.
package fleet

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"listingmanager/config"
	deliverycontext "listingmanager/internal/delivery/context"
	"listingmanager/internal/domain/entity"
	domainerrors "listingmanager/internal/domain/errors"
	"listingmanager/internal/domain/repository"
	"listingmanager/internal/infra/remote"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// isoMillis is the timestamp layout the fleet server stores.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type devicePublicModel struct {
	ID               string    `json:"_id"`
	Expiration       time.Time `json:"expiration"`
	CheckinTimeStamp time.Time `json:"checkinTimeStamp"`
	PrivateData      string    `json:"privateData"`
	ObContract       string    `json:"obContract"`
}

type devicePrivateModel struct {
	ID             string `json:"_id"`
	ServerSSHPort  int    `json:"serverSSHPort"`
	DeviceUserName string `json:"deviceUserName"`
	DevicePassword string `json:"devicePassword"`
}

type collectionResponse[T any] struct {
	Collection *T `json:"collection"`
}

type rentedDevicesModel struct {
	RentedDevices []string `json:"rentedDevices"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type fleetClient struct {
	client *remote.Client
	logger *slog.Logger
}

// ClientParams holds dependencies for the fleet client, injected by Fx
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds the fleet client
func NewClient(params ClientParams) repository.FleetRepository {
	cfg := params.Config.Fleet

	return newClient(cfg.BaseURL, cfg.Timeout, params.Logger)
}

func newClient(baseURL string, timeout time.Duration, logger *slog.Logger) *fleetClient {
	return &fleetClient{
		client: remote.NewClient(baseURL, timeout, logger),
		logger: logger,
	}
}

func (c *fleetClient) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// GetDevicePublic fetches and maps a device public record
func (c *fleetClient) GetDevicePublic(ctx context.Context, deviceID string) (*entity.DevicePublic, error) {
	var resp collectionResponse[devicePublicModel]
	err := c.client.Get(ctx, c.client.URL("devicePublicData", deviceID), &resp)
	if domainerrors.StatusCode(err) == http.StatusNotFound || (err == nil && resp.Collection == nil) {
		return nil, domainerrors.ErrDevicePublicNotFound.WithDetails(deviceID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get device public record %s", deviceID)
	}

	m := resp.Collection
	id := m.ID
	if id == "" {
		id = deviceID
	}

	return &entity.DevicePublic{
		ID:         id,
		Expiration: m.Expiration,
		CheckinAt:  m.CheckinTimeStamp,
		PrivateRef: m.PrivateData,
		ListingRef: m.ObContract,
	}, nil
}

// GetDevicePrivate fetches and maps a device private record
func (c *fleetClient) GetDevicePrivate(ctx context.Context, privateID string) (*entity.DevicePrivate, error) {
	var resp collectionResponse[devicePrivateModel]
	err := c.client.Get(ctx, c.client.URL("devicePrivateData", privateID), &resp)
	if domainerrors.StatusCode(err) == http.StatusNotFound || (err == nil && resp.Collection == nil) {
		return nil, domainerrors.ErrDevicePrivateNotFound.WithDetails(privateID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get device private record %s", privateID)
	}

	m := resp.Collection

	return &entity.DevicePrivate{
		ID:       m.ID,
		SSHPort:  m.ServerSSHPort,
		Username: m.DeviceUserName,
		Password: m.DevicePassword,
	}, nil
}

// UpdateExpiration rewrites the expiration field of the stored public record.
// The record is round-tripped as a raw document so fields this side does not
// model survive the update.
func (c *fleetClient) UpdateExpiration(ctx context.Context, deviceID string, expiration time.Time) error {
	var current collectionResponse[map[string]any]
	err := c.client.Get(ctx, c.client.URL("devicePublicData", deviceID), &current)
	if domainerrors.StatusCode(err) == http.StatusNotFound || (err == nil && current.Collection == nil) {
		return domainerrors.ErrDevicePublicNotFound.WithDetails(deviceID)
	}
	if err != nil {
		return errors.Wrapf(err, "get device public record %s", deviceID)
	}

	doc := *current.Collection
	previous := doc["expiration"]
	doc["expiration"] = expiration.UTC().Format(isoMillis)

	var updated collectionResponse[map[string]any]
	if err := c.client.Post(ctx, c.client.URL("devicePublicData", deviceID, "update"), doc, &updated); err != nil {
		return errors.Wrapf(err, "update expiration of %s", deviceID)
	}
	if updated.Collection == nil || (*updated.Collection)["expiration"] == nil {
		return domainerrors.ErrExpirationNotUpdated.WithDetails(deviceID)
	}

	c.log(ctx).Info("Device expiration updated",
		slog.String("device_id", deviceID),
		slog.Any("previous", previous),
		slog.Time("expiration", expiration),
	)

	return nil
}

// ListRentedDevices returns the IDs stored in the rented devices registry
func (c *fleetClient) ListRentedDevices(ctx context.Context) ([]string, error) {
	var resp struct {
		Collection []rentedDevicesModel `json:"collection"`
	}
	if err := c.client.Get(ctx, c.client.URL("rentedDevices", "list"), &resp); err != nil {
		return nil, errors.Wrap(err, "list rented devices")
	}
	if len(resp.Collection) == 0 {
		return nil, domainerrors.ErrRegistryMissing
	}

	return resp.Collection[0].RentedDevices, nil
}

// AddRentedDevice adds deviceID to the rented devices registry
func (c *fleetClient) AddRentedDevice(ctx context.Context, deviceID string) error {
	return c.registryCall(ctx, "add", deviceID)
}

// RemoveRentedDevice removes deviceID from the rented devices registry
func (c *fleetClient) RemoveRentedDevice(ctx context.Context, deviceID string) error {
	return c.registryCall(ctx, "remove", deviceID)
}

func (c *fleetClient) registryCall(ctx context.Context, op, deviceID string) error {
	var resp successResponse
	if err := c.client.Get(ctx, c.client.URL("rentedDevices", op, deviceID), &resp); err != nil {
		return errors.Wrapf(err, "%s rented device %s", op, deviceID)
	}
	if !resp.Success {
		return domainerrors.ErrRemoteRejected.WithDetails(op + " rented device " + deviceID)
	}

	return nil
}

// RemoveListing tears down the marketplace listing for a listing contract
func (c *fleetClient) RemoveListing(ctx context.Context, listingRef string) error {
	var resp successResponse
	err := c.client.Get(ctx, c.client.URL("ob", "removeMarketListing", listingRef), &resp)
	if domainerrors.StatusCode(err) == http.StatusNotFound {
		return domainerrors.ErrListingNotFound.WithDetails(listingRef)
	}
	if err != nil {
		return errors.Wrapf(err, "remove listing %s", listingRef)
	}
	if !resp.Success {
		return domainerrors.ErrRemoteRejected.WithDetails("remove listing " + listingRef)
	}

	return nil
}
