package service_test

import (
	"context"
	"testing"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/model"
	"complaint-portal/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_List(t *testing.T) {
	store := new(MockNotificationStore)
	svc := service.NewNotificationService(store)
	uid := uuid.New()

	store.On("ListByUser", uid).Return(nil, nil)
	store.On("UnreadCount", uid).Return(0, nil)

	resp, err := svc.List(context.Background(), uid.String())
	require.NoError(t, err)
	assert.NotNil(t, resp.Notifications)
	assert.Zero(t, resp.UnreadCount)

	_, err = svc.List(context.Background(), "not-a-uuid")
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	store := new(MockNotificationStore)
	svc := service.NewNotificationService(store)
	uid, nid, other := uuid.New(), uuid.New(), uuid.New()

	store.On("MarkAsRead", nid, uid).Return(nil)
	store.On("MarkAsRead", other, uid).Return(model.ErrNotFound)

	require.NoError(t, svc.MarkAsRead(context.Background(), uid.String(), nid.String()))

	err := svc.MarkAsRead(context.Background(), uid.String(), other.String())
	assert.True(t, apperr.Is(err, apperr.NotFound))

	err = svc.MarkAsRead(context.Background(), uid.String(), "bad")
	assert.True(t, apperr.Is(err, apperr.Validation))
}
