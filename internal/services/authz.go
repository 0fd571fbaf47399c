package services

import (
	"errors"
	"strconv"

	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

// AuthzService answers membership and deletion-permission questions for
// (project, user) pairs.
type AuthzService struct {
	db *gorm.DB
}

func NewAuthzService(db *gorm.DB) *AuthzService {
	return &AuthzService{db: db}
}

// IsProjectMember reports whether userID holds any membership on projectID.
// Both ids arrive as strings (typically URL parameters); non-numeric input is
// answered with false after a warning rather than an error. Role is irrelevant
// here. A persistence failure is returned as an error, never conflated with
// "not a member".
func (s *AuthzService) IsProjectMember(projectID, userID string) (bool, error) {
	pid, err := strconv.ParseUint(projectID, 10, 32)
	if err != nil {
		logger.Warn().Str("project_id", projectID).Msg("membership check with non-numeric project id")
		return false, nil
	}
	uid, err := strconv.ParseUint(userID, 10, 32)
	if err != nil {
		logger.Warn().Str("user_id", userID).Msg("membership check with non-numeric user id")
		return false, nil
	}

	var count int64
	if err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", pid, uid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanDeleteProject decides whether the user may delete the project. A nil
// return means allow; an *response.AppError carries the denial reason. The
// policy is evaluated in order: global admin bypass, project existence,
// membership, derivable creator, creator identity.
func (s *AuthzService) CanDeleteProject(projectID, userID uint, globalRole string) error {
	if globalRole == "admin" {
		return nil
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	var membership models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewForbidden("access denied: not a project member")
		}
		return err
	}

	var members []models.ProjectMember
	if err := s.db.Where("project_id = ?", projectID).
		Order("joined_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return err
	}

	creator := DeriveCreator(members)
	if creator == nil {
		return response.NewForbidden("cannot verify project permissions")
	}
	if creator.UserID == userID {
		return nil
	}
	return response.NewForbidden("only the project creator can delete the project")
}

// DeriveCreator returns the member with role project_manager and the earliest
// join time, ties broken by lowest member id, or nil when no project_manager
// exists. The result does not depend on the input ordering.
func DeriveCreator(members []models.ProjectMember) *models.ProjectMember {
	var creator *models.ProjectMember
	for i := range members {
		m := &members[i]
		if m.Role != models.RoleProjectManager {
			continue
		}
		if creator == nil ||
			m.JoinedAt.Before(creator.JoinedAt) ||
			(m.JoinedAt.Equal(creator.JoinedAt) && m.ID < creator.ID) {
			creator = m
		}
	}
	return creator
}
