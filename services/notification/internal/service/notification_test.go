package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/musicclouds/platform/pkg/events"
	"github.com/musicclouds/platform/services/notification/internal/models"
	"github.com/musicclouds/platform/services/notification/internal/repo"
)

func newTestService(t *testing.T) *NotificationService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	return &NotificationService{Repo: repo.GormRepo{DB: db}}
}

func TestSend_PersistsNotification(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Send(ctx, events.NotificationRequest{
		ToUserID:    42,
		ToUserEmail: "a@x.com",
		Message:     "Hi Alice, welcome to musicclouds",
	})
	require.NoError(t, err)

	stored, err := svc.Repo.NotificationsForUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "a@x.com", stored[0].ToUserEmail)
	assert.Equal(t, "musicclouds", stored[0].Sender)
	assert.Equal(t, "Hi Alice, welcome to musicclouds", stored[0].Message)
	assert.WithinDuration(t, time.Now().UTC(), stored[0].SentAt, time.Minute)
}

func TestSend_OrdersByTime(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for _, msg := range []string{"first", "second"} {
		require.NoError(t, svc.Send(ctx, events.NotificationRequest{
			ToUserID:    7,
			ToUserEmail: "b@x.com",
			Message:     msg,
		}))
	}

	stored, err := svc.Repo.NotificationsForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "first", stored[0].Message)
	assert.Equal(t, "second", stored[1].Message)
}
