package impl

import (
	"context"
	"testing"

	mockRepo "listingmanager/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRentedRegistry_EnsureIsIdempotent(t *testing.T) {
	fleet := mockRepo.NewMockFleetRepository(t)
	registry := rentedRegistry{fleet: fleet}
	ctx := context.Background()

	members := []string{"def456"}
	fleet.EXPECT().ListRentedDevices(ctx).RunAndReturn(func(context.Context) ([]string, error) {
		return members, nil
	})
	fleet.EXPECT().AddRentedDevice(ctx, "abc123").RunAndReturn(func(_ context.Context, id string) error {
		members = append(members, id)

		return nil
	}).Once()

	added, err := registry.ensure(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = registry.ensure(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"def456", "abc123"}, members)
}

func TestRentedRegistry_ReleaseNonMemberIsNoop(t *testing.T) {
	fleet := mockRepo.NewMockFleetRepository(t)
	registry := rentedRegistry{fleet: fleet}
	ctx := context.Background()

	fleet.EXPECT().ListRentedDevices(ctx).Return([]string{"def456"}, nil)

	removed, err := registry.release(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, removed)
	fleet.AssertNotCalled(t, "RemoveRentedDevice", mock.Anything, mock.Anything)
}

func TestRentedRegistry_ReleaseMember(t *testing.T) {
	fleet := mockRepo.NewMockFleetRepository(t)
	registry := rentedRegistry{fleet: fleet}
	ctx := context.Background()

	fleet.EXPECT().ListRentedDevices(ctx).Return([]string{"abc123", "def456"}, nil)
	fleet.EXPECT().RemoveRentedDevice(ctx, "abc123").Return(nil)

	removed, err := registry.release(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, removed)
}
