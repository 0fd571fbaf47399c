package services

import (
	"github.com/orquestra-app/orquestra/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates per-user overview numbers.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	ProjectCount        int64 `json:"project_count"`
	AssignedTaskCount   int64 `json:"assigned_task_count"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// GetStats returns the caller's dashboard counters.
func (s *DashboardService) GetStats(userID uint) (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&models.ProjectMember{}).
		Where("user_id = ?", userID).
		Count(&stats.ProjectCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Task{}).
		Where("assignee_id = ? AND status != ?", userID, "done").
		Count(&stats.AssignedTaskCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.UnreadNotifications).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
