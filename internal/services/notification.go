package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// NotificationService persists per-user notifications and hands delivery off
// to the task queue.
type NotificationService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewNotificationService(db *gorm.DB, queue TaskQueue) *NotificationService {
	return &NotificationService{db: db, queue: queue}
}

// NotifyProjectAddition records a "you were added to project X" notification
// and enqueues its delivery.
func (s *NotificationService) NotifyProjectAddition(userID, projectID uint, projectName string) error {
	notification := models.Notification{
		UserID:    userID,
		Type:      models.NotificationProjectAddition,
		Message:   fmt.Sprintf("You were added to project %q", projectName),
		ProjectID: &projectID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return err
	}

	if s.queue == nil {
		return nil
	}
	return s.queue.Enqueue(&NotificationTask{
		NotificationID: notification.ID,
		UserID:         userID,
		Message:        notification.Message,
	})
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID uint, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("notification not found")
	}
	return nil
}

// UnreadCount returns how many unread notifications the user has.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// PurgeRead deletes read notifications older than retentionDays.
func (s *NotificationService) PurgeRead(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// Deliver marks a notification as processed by the delivery pipeline. The
// in-app row is the delivery target; external transports would hook in here.
func (s *NotificationService) Deliver(ctx context.Context, task *NotificationTask) error {
	var notification models.Notification
	if err := s.db.First(&notification, task.NotificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Purged before delivery; nothing to do.
			return nil
		}
		return err
	}

	logger.Info().
		Uint("notification_id", notification.ID).
		Uint("user_id", notification.UserID).
		Str("type", notification.Type).
		Msg("notification delivered")
	return nil
}

// --- Retention scheduler ---

var (
	retentionCron *cron.Cron
	retentionMu   sync.Mutex
)

// StartRetentionScheduler purges read notifications past retention every
// night at 03:30.
func StartRetentionScheduler(svc *NotificationService, retentionDays int) {
	retentionMu.Lock()
	defer retentionMu.Unlock()

	if retentionCron != nil {
		return
	}

	retentionCron = cron.New()
	_, err := retentionCron.AddFunc("30 3 * * *", func() {
		purged, err := svc.PurgeRead(retentionDays)
		if err != nil {
			logger.Error().Err(err).Msg("notification retention purge failed")
			return
		}
		if purged > 0 {
			logger.Info().Int64("purged", purged).Msg("notification retention purge complete")
		}
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to schedule notification retention purge")
		return
	}
	retentionCron.Start()
	logger.Info().Int("retention_days", retentionDays).Msg("notification retention scheduler started")
}

// StopRetentionScheduler stops the purge scheduler.
func StopRetentionScheduler() {
	retentionMu.Lock()
	defer retentionMu.Unlock()

	if retentionCron != nil {
		retentionCron.Stop()
		retentionCron = nil
	}
}
