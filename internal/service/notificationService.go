package service

import (
	"context"

	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	"github.com/abhey8/Hospital-OPD/internal/entity"

	"github.com/sirupsen/logrus"
)

// listLimit caps the notification feed; older entries stay in the store but
// are not returned.
const listLimit = 50

type NotificationList struct {
	Notifications []*entity.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	cache            UnreadCache
}

// NewNotificationService accepts a nil cache; every read then falls through
// to the repository count.
func NewNotificationService(notificationRepo repository.NotificationRepository, cache UnreadCache) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, cache: cache}
}

func (s *notificationService) List(ctx context.Context, userID int64) (*NotificationList, error) {
	notifications, err := s.notificationRepo.GetByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.unreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *notificationService) unreadCount(ctx context.Context, userID int64) (int64, error) {
	if s.cache != nil {
		if count, ok := s.cache.GetUnread(ctx, userID); ok {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnreadByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetUnread(ctx, userID, count); err != nil {
			logrus.Warnf("Failed to cache unread count for user %d: %v", userID, err)
		}
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.notificationRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationService) Stats(ctx context.Context) (*entity.NotificationStats, error) {
	return s.notificationRepo.GetStats(ctx)
}

func (s *notificationService) Notify(ctx context.Context, notification *entity.Notification) error {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}
	s.invalidate(ctx, notification.UserID)
	return nil
}

func (s *notificationService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		logrus.Warnf("Failed to invalidate unread cache for user %d: %v", userID, err)
	}
}
