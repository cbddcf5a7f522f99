package service

import (
	"context"
	"errors"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/model"

	"github.com/google/uuid"
)

type NotificationStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type NotificationService struct {
	notifications NotificationStore
}

func NewNotificationService(notifications NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func parseUserID(userID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.Validation, "Invalid user id", err)
	}
	return uid, nil
}

func (s *NotificationService) List(ctx context.Context, userID string) (*model.NotificationListResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifications.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	unread, err := s.notifications.UnreadCount(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &model.NotificationListResponse{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	nid, err := uuid.Parse(notificationID)
	if err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid notification id", err)
	}

	if err := s.notifications.MarkAsRead(ctx, nid, uid); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apperr.NotFoundf("Notification not found")
		}
		return err
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	return s.notifications.MarkAllAsRead(ctx, uid)
}
