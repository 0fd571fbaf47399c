package services

import (
	"errors"

	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

// MemberService manages project memberships. Adding an existing member
// upserts the role instead of creating a duplicate row.
type MemberService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewMemberService(db *gorm.DB, notifier *NotificationService) *MemberService {
	return &MemberService{db: db, notifier: notifier}
}

// Add attaches a user to a project. If the membership already exists the
// stored role is updated in place (or left alone when identical); a brand-new
// membership triggers a best-effort notification to the added user.
func (s *MemberService) Add(projectID, userID uint, role string) (*models.ProjectMember, error) {
	if role == "" {
		return nil, response.NewValidation(map[string]string{"role": "is required"})
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	var existing models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		if existing.Role != role {
			if err := s.db.Model(&existing).Update("role", role).Error; err != nil {
				return nil, err
			}
		}
		return s.reload(existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	// Best-effort: a failed notification never fails the add itself.
	go func() {
		if err := s.notifier.NotifyProjectAddition(userID, projectID, project.Name); err != nil {
			logger.Warn().Err(err).
				Uint("user_id", userID).
				Uint("project_id", projectID).
				Msg("project addition notification failed")
		}
	}()

	return s.reload(member.ID)
}

// Remove deletes the membership for (projectID, userID). Removing an absent
// member is an error, distinguishing "removed" from "was never there".
func (s *MemberService) Remove(projectID, userID uint) error {
	result := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("member not found")
	}
	return nil
}

// List returns the project's memberships with embedded user id/name/email,
// ordered by join time.
func (s *MemberService) List(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := s.db.Where("project_id = ?", projectID).
		Order("joined_at ASC, id ASC").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MemberService) reload(memberID uint) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := s.db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).First(&member, memberID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
