package service

import (
	"context"
	"time"

	"github.com/musicclouds/platform/pkg/events"
	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/services/notification/internal/models"
	"github.com/musicclouds/platform/services/notification/internal/repo"
)

const sender = "musicclouds"

type NotificationService struct {
	Repo repo.GormRepo
}

func (s *NotificationService) Send(ctx context.Context, req events.NotificationRequest) error {
	l := logging.FromContext(ctx).With("svc", "notification.send", "to_user_id", req.ToUserID)

	n := models.Notification{
		ToUserID:    req.ToUserID,
		ToUserEmail: req.ToUserEmail,
		Sender:      sender,
		Message:     req.Message,
		SentAt:      time.Now().UTC(),
	}
	if err := s.Repo.SaveNotification(ctx, &n); err != nil {
		l.Error("notification_not_persisted", "error", err)
		return err
	}

	l.Info("notification_persisted", "notification_id", n.ID)
	return nil
}
