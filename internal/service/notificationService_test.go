package service

import (
	"context"
	"testing"

	"github.com/abhey8/Hospital-OPD/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, svc NotificationService, userID int64, count int) []int64 {
	t.Helper()
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		n := &entity.Notification{
			UserID: userID,
			Type:   entity.NotificationTypeSystem,
			Title:  "Test",
			Body:   "test notification",
		}
		require.NoError(t, svc.Notify(context.Background(), n))
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNotificationListUnreadCount(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	ids := seedNotifications(t, svc, 7, 3)
	require.NoError(t, svc.MarkRead(context.Background(), ids[0], 7))

	list, err := svc.List(context.Background(), 7)
	require.NoError(t, err)

	assert.Len(t, list.Notifications, 3)
	// unreadCount must equal the number of isRead=false rows at query time.
	assert.Equal(t, int64(2), list.UnreadCount)
}

func TestNotificationMarkReadIdempotent(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	ids := seedNotifications(t, svc, 7, 1)

	require.NoError(t, svc.MarkRead(context.Background(), ids[0], 7))
	require.NoError(t, svc.MarkRead(context.Background(), ids[0], 7))

	list, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, list.Notifications[0].IsRead)
	assert.Equal(t, int64(0), list.UnreadCount)
}

func TestNotificationOwnerScoping(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	ids := seedNotifications(t, svc, 7, 1)

	// Another user touching the row looks like a missing row.
	assert.ErrorIs(t, svc.MarkRead(context.Background(), ids[0], 8), entity.ErrNotificationNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), ids[0], 8), entity.ErrNotificationNotFound)
}

func TestNotificationDelete(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	ids := seedNotifications(t, svc, 7, 2)
	require.NoError(t, svc.Delete(context.Background(), ids[0], 7))

	list, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.Equal(t, int64(1), list.UnreadCount)

	assert.ErrorIs(t, svc.Delete(context.Background(), ids[0], 7), entity.ErrNotificationNotFound)
}

func TestNotificationMarkAllRead(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	seedNotifications(t, svc, 7, 3)
	seedNotifications(t, svc, 8, 1)

	require.NoError(t, svc.MarkAllRead(context.Background(), 7))

	own, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), own.UnreadCount)

	// Other users' notifications stay untouched.
	other, err := svc.List(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.UnreadCount)
}

func TestNotificationListCap(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	seedNotifications(t, svc, 7, listLimit+10)

	list, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, listLimit)
	// The counter covers the whole store, not just the returned page.
	assert.Equal(t, int64(listLimit+10), list.UnreadCount)
}

func TestNotificationUnreadCacheFlow(t *testing.T) {
	store := newFakeNotificationRepo()
	cache := newFakeCache()
	svc := NewNotificationService(store, cache)

	ids := seedNotifications(t, svc, 7, 2)

	// First list misses the cache and fills it.
	list, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.UnreadCount)
	cached, ok := cache.GetUnread(context.Background(), 7)
	require.True(t, ok)
	assert.Equal(t, int64(2), cached)

	// Every write drops the cached counter.
	require.NoError(t, svc.MarkRead(context.Background(), ids[0], 7))
	_, ok = cache.GetUnread(context.Background(), 7)
	assert.False(t, ok)

	list, err = svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.UnreadCount)
}

func TestNotificationStats(t *testing.T) {
	store := newFakeNotificationRepo()
	svc := NewNotificationService(store, nil)

	seedNotifications(t, svc, 7, 2)
	require.NoError(t, svc.Notify(context.Background(), &entity.Notification{
		UserID: 8,
		Type:   entity.NotificationTypeReminder,
		Title:  "Appointment Reminder",
		Body:   "reminder",
	}))
	require.NoError(t, svc.MarkAllRead(context.Background(), 7))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Unread)
	assert.Equal(t, int64(1), stats.Reminders)
}
