package service

import (
	"context"
	"log/slog"

	"github.com/tecnitrama/backend/internal/metrics"
	"github.com/tecnitrama/backend/pkg/models"
	"github.com/tecnitrama/backend/pkg/repository"
)

// NotificationService owns notification creation and the per-user read
// state.
type NotificationService struct {
	notifications repository.NotificationRepo
	logger        *slog.Logger
}

func NewNotificationService(notifications repository.NotificationRepo, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{notifications: notifications, logger: logger}
}

func (s *NotificationService) Create(ctx context.Context, userID int64, projectID *int64, content string) (int64, error) {
	if userID <= 0 || content == "" {
		return 0, newValidationError("user_id and content are required")
	}

	id, err := s.notifications.CreateNotification(ctx, userID, projectID, content)
	if err != nil {
		return 0, err
	}
	metrics.NotificationsFanout.Inc()

	return id, nil
}

// CreateForUsers fans one notification out to every user id. Re-sending to
// an overlapping recipient set never duplicates junction rows.
func (s *NotificationService) CreateForUsers(ctx context.Context, userIDs []int64, projectID *int64, content string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, newValidationError("user_ids must be a non-empty array")
	}
	if content == "" {
		return 0, newValidationError("content is required")
	}

	id, err := s.notifications.CreateNotificationForUsers(ctx, userIDs, projectID, content)
	if err != nil {
		return 0, err
	}
	metrics.NotificationsFanout.Add(float64(len(userIDs)))
	s.logger.Info("notification fan-out", slog.Int64("notification_id", id), slog.Int("recipients", len(userIDs)))

	return id, nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]models.UserNotification, error) {
	return s.notifications.ListNotificationsByUser(ctx, userID)
}

// MarkRead sets the read flag for one (notification, user) pair. It is a
// one-way mark, and an unknown pair is a silent no-op.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notifications.MarkNotificationRead(ctx, notificationID, userID)
}
