package impl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"listingmanager/config"
	"listingmanager/internal/domain/entity"
	domainerrors "listingmanager/internal/domain/errors"
	"listingmanager/internal/domain/service"
	mockRepo "listingmanager/internal/mocks/repository"
	mockService "listingmanager/internal/mocks/service"
	"listingmanager/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const testAccessNote = "Host: p2pvps.net\nPort: 6101\nLogin: pi\nPassword: raspberry\n"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Lease.Tier = entity.LeaseTierHour
	cfg.Fulfillment.SSHHost = "p2pvps.net"
	cfg.Liveness.MaxDelay = 10 * time.Minute
	cfg.Liveness.GraceBuffer = 5 * time.Minute

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fulfillmentServiceFixtures holds all test dependencies for fulfillment service tests.
type fulfillmentServiceFixtures struct {
	service     *fulfillmentService
	marketplace *mockRepo.MockMarketplaceRepository
	fleet       *mockRepo.MockFleetRepository
	publisher   *mockService.MockEventPublisher
}

func createTestFulfillmentService(t *testing.T, cfg *config.Config) fulfillmentServiceFixtures {
	marketplace := mockRepo.NewMockMarketplaceRepository(t)
	fleet := mockRepo.NewMockFleetRepository(t)
	publisher := mockService.NewMockEventPublisher(t)

	svc, err := newFulfillmentService(FulfillmentServiceParams{
		Marketplace: marketplace,
		Fleet:       fleet,
		Publisher:   publisher,
		Config:      cfg,
		Logger:      discardLogger(),
	}, func() time.Time { return testNow })
	require.NoError(t, err)

	return fulfillmentServiceFixtures{
		service:     svc,
		marketplace: marketplace,
		fleet:       fleet,
		publisher:   publisher,
	}
}

func orderNotification() *entity.Notification {
	return &entity.Notification{
		ID:      "n1",
		Type:    entity.NotificationTypeOrder,
		Slug:    "rental-abc123",
		OrderID: "o1",
	}
}

func rentableDevice() *entity.DevicePublic {
	return &entity.DevicePublic{
		ID:         "abc123",
		Expiration: testNow.Add(-time.Hour),
		CheckinAt:  testNow.Add(-time.Minute),
		PrivateRef: "priv1",
		ListingRef: "contract1",
	}
}

func rentableDevicePrivate() *entity.DevicePrivate {
	return &entity.DevicePrivate{ID: "priv1", SSHPort: 6101, Username: "pi", Password: "raspberry"}
}

func requireStepError(t *testing.T, err error, step string) {
	t.Helper()

	var stepErr *usecase.StepError
	require.True(t, errors.As(err, &stepErr), "expected StepError, got %v", err)
	assert.Equal(t, step, stepErr.Step)
}

func TestFulfillmentService_FulfillNextOrder_Success(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	mock.InOrder(
		f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil).Call,
		f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil).Call,
		f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil).Call,
		f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).Return(nil).Call,
		f.marketplace.EXPECT().MarkNotificationRead(ctx, "n1").Return(nil).Call,
		f.fleet.EXPECT().UpdateExpiration(ctx, "abc123", testNow.Add(time.Hour)).Return(nil).Call,
		f.fleet.EXPECT().ListRentedDevices(ctx).Return([]string{"def456"}, nil).Call,
		f.fleet.EXPECT().AddRentedDevice(ctx, "abc123").Return(nil).Call,
		f.fleet.EXPECT().RemoveListing(ctx, "contract1").Return(nil).Call,
	)

	f.publisher.EXPECT().
		PublishLifecycleEvent(ctx, mock.MatchedBy(func(e *service.LifecycleEvent) bool {
			return e.Type == service.EventOrderFulfilled &&
				e.DeviceID == "abc123" &&
				e.OrderID == "o1" &&
				e.ListingRef == "contract1" &&
				e.EventID != "" &&
				e.Expiration.Equal(testNow.Add(time.Hour))
		})).
		Return(nil)

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.True(t, result.Fulfilled)
	assert.Equal(t, "n1", result.NotificationID)
	assert.Equal(t, "o1", result.OrderID)
	assert.Equal(t, "abc123", result.DeviceID)
	assert.Equal(t, testNow.Add(time.Hour), result.Expiration)
	assert.Empty(t, result.SkipReason)
}

func TestFulfillmentService_FulfillNextOrder_PublicRecordMissing(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(nil, domainerrors.ErrDevicePublicNotFound.WithDetails("abc123"))

	result, err := f.service.FulfillNextOrder(ctx)
	require.Error(t, err)
	assert.Nil(t, result)
	requireStepError(t, err, usecase.StepFetchDevicePublic)
	assert.True(t, errors.Is(err, domainerrors.ErrDevicePublicNotFound))

	f.marketplace.AssertNotCalled(t, "FulfillOrder", mock.Anything, mock.Anything, mock.Anything)
	f.fleet.AssertNotCalled(t, "ListRentedDevices", mock.Anything)
	f.fleet.AssertNotCalled(t, "AddRentedDevice", mock.Anything, mock.Anything)
}

func TestFulfillmentService_FulfillNextOrder_NoUnread(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return(nil, nil)

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.False(t, result.Fulfilled)
	assert.Equal(t, usecase.SkipNoUnread, result.SkipReason)
}

func TestFulfillmentService_FulfillNextOrder_FirstUnreadNotAnOrder(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	notes := []*entity.Notification{
		{ID: "n0", Type: "follow"},
		orderNotification(),
	}
	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return(notes, nil)

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.False(t, result.Fulfilled)
	assert.Equal(t, "n0", result.NotificationID)
	assert.Equal(t, usecase.SkipNotOrder, result.SkipReason)
}

func TestFulfillmentService_FulfillNextOrder_OnlyFirstOrderPerCycle(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	second := &entity.Notification{ID: "n2", Type: entity.NotificationTypeOrder, Slug: "rental-def456", OrderID: "o2"}
	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification(), second}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil)
	f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).Return(nil)
	f.marketplace.EXPECT().MarkNotificationRead(ctx, "n1").Return(nil)
	f.fleet.EXPECT().UpdateExpiration(ctx, "abc123", mock.Anything).Return(nil)
	f.fleet.EXPECT().ListRentedDevices(ctx).Return([]string{}, nil)
	f.fleet.EXPECT().AddRentedDevice(ctx, "abc123").Return(nil)
	f.fleet.EXPECT().RemoveListing(ctx, "contract1").Return(nil)
	f.publisher.EXPECT().PublishLifecycleEvent(ctx, mock.Anything).Return(nil)

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "o1", result.OrderID)

	f.marketplace.AssertNotCalled(t, "FulfillOrder", ctx, "o2", mock.Anything)
	f.fleet.AssertNotCalled(t, "GetDevicePublic", ctx, "def456")
}

func TestFulfillmentService_FulfillNextOrder_MalformedSlug(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	note := orderNotification()
	note.Slug = "rental-"
	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{note}, nil)

	_, err := f.service.FulfillNextOrder(ctx)
	require.Error(t, err)
	requireStepError(t, err, usecase.StepParseSlug)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedSlug))
}

func TestFulfillmentService_FulfillNextOrder_MissingPrivateRef(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	device := rentableDevice()
	device.PrivateRef = ""
	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(device, nil)

	_, err := f.service.FulfillNextOrder(ctx)
	require.Error(t, err)
	requireStepError(t, err, usecase.StepFetchDevicePrivate)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingPrivateRef))
	f.fleet.AssertNotCalled(t, "GetDevicePrivate", mock.Anything, mock.Anything)
}

func TestFulfillmentService_FulfillNextOrder_PrivateRecordMissing(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(nil, domainerrors.ErrDevicePrivateNotFound.WithDetails("priv1"))

	_, err := f.service.FulfillNextOrder(ctx)
	require.Error(t, err)
	requireStepError(t, err, usecase.StepFetchDevicePrivate)
	assert.True(t, errors.Is(err, domainerrors.ErrDevicePrivateNotFound))
	f.marketplace.AssertNotCalled(t, "FulfillOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestFulfillmentService_FulfillNextOrder_TransientFulfillFailure(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil)
	f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).
		Return(domainerrors.NewStatusError(http.MethodPost, "http://store/ob/orderfulfillment", http.StatusBadGateway, ""))

	_, err := f.service.FulfillNextOrder(ctx)
	require.Error(t, err)
	requireStepError(t, err, usecase.StepFulfillOrder)
	assert.True(t, domainerrors.IsTransient(err))
	f.marketplace.AssertNotCalled(t, "MarkNotificationRead", mock.Anything, mock.Anything)
}

func TestFulfillmentService_FulfillNextOrder_AlreadyRegisteredAndListingGone(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil)
	f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).Return(nil)
	f.marketplace.EXPECT().MarkNotificationRead(ctx, "n1").Return(nil)
	f.fleet.EXPECT().UpdateExpiration(ctx, "abc123", testNow.Add(time.Hour)).Return(nil)
	f.fleet.EXPECT().ListRentedDevices(ctx).Return([]string{"abc123"}, nil)
	f.fleet.EXPECT().RemoveListing(ctx, "contract1").Return(domainerrors.ErrListingNotFound.WithDetails("contract1"))
	f.publisher.EXPECT().PublishLifecycleEvent(ctx, mock.Anything).Return(nil)

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.True(t, result.Fulfilled)
	f.fleet.AssertNotCalled(t, "AddRentedDevice", mock.Anything, mock.Anything)
}

func TestFulfillmentService_FulfillNextOrder_MissingListingRef(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	device := rentableDevice()
	device.ListingRef = ""
	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(device, nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil)
	f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).Return(nil)
	f.marketplace.EXPECT().MarkNotificationRead(ctx, "n1").Return(nil)
	f.fleet.EXPECT().UpdateExpiration(ctx, "abc123", testNow.Add(time.Hour)).Return(nil)
	f.fleet.EXPECT().ListRentedDevices(ctx).Return([]string{}, nil)
	f.fleet.EXPECT().AddRentedDevice(ctx, "abc123").Return(nil)

	_, err := f.service.FulfillNextOrder(ctx)
	require.Error(t, err)
	requireStepError(t, err, usecase.StepRemoveListing)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingListingRef))
}

func TestFulfillmentService_FulfillNextOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := createTestFulfillmentService(t, testConfig())
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil)
	f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).Return(nil)
	f.marketplace.EXPECT().MarkNotificationRead(ctx, "n1").Return(nil)
	f.fleet.EXPECT().UpdateExpiration(ctx, "abc123", testNow.Add(time.Hour)).Return(nil)
	f.fleet.EXPECT().ListRentedDevices(ctx).Return([]string{}, nil)
	f.fleet.EXPECT().AddRentedDevice(ctx, "abc123").Return(nil)
	f.fleet.EXPECT().RemoveListing(ctx, "contract1").Return(nil)
	f.publisher.EXPECT().PublishLifecycleEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.True(t, result.Fulfilled)
}

func TestNewFulfillmentService_UnknownLeaseTier(t *testing.T) {
	cfg := testConfig()
	cfg.Lease.Tier = "1year"

	_, err := NewFulfillmentService(FulfillmentServiceParams{
		Marketplace: mockRepo.NewMockMarketplaceRepository(t),
		Fleet:       mockRepo.NewMockFleetRepository(t),
		Publisher:   mockService.NewMockEventPublisher(t),
		Config:      cfg,
		Logger:      discardLogger(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownLeaseTier))
}

func TestNewFulfillmentService_TierOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Lease.Tier = "2day"
	cfg.Lease.Tiers = map[string]time.Duration{"2day": 48 * time.Hour}

	f := createTestFulfillmentService(t, cfg)
	ctx := context.Background()

	f.marketplace.EXPECT().ListUnreadNotifications(ctx).Return([]*entity.Notification{orderNotification()}, nil)
	f.fleet.EXPECT().GetDevicePublic(ctx, "abc123").Return(rentableDevice(), nil)
	f.fleet.EXPECT().GetDevicePrivate(ctx, "priv1").Return(rentableDevicePrivate(), nil)
	f.marketplace.EXPECT().FulfillOrder(ctx, "o1", testAccessNote).Return(nil)
	f.marketplace.EXPECT().MarkNotificationRead(ctx, "n1").Return(nil)
	f.fleet.EXPECT().UpdateExpiration(ctx, "abc123", testNow.Add(48*time.Hour)).Return(nil)
	f.fleet.EXPECT().ListRentedDevices(ctx).Return([]string{"abc123"}, nil)
	f.fleet.EXPECT().RemoveListing(ctx, "contract1").Return(nil)
	f.publisher.EXPECT().PublishLifecycleEvent(ctx, mock.Anything).Return(nil)

	result, err := f.service.FulfillNextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(48*time.Hour), result.Expiration)
}
