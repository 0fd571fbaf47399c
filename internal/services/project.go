package services

import (
	"errors"
	"sync"

	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProjectDetail is a project with its membership list and the derived creator
// attached as a computed field.
type ProjectDetail struct {
	models.Project
	Creator *models.ProjectMember `json:"creator"`
}

type ProjectStats struct {
	ProjectID     uint  `json:"project_id"`
	TaskCount     int64 `json:"task_count"`
	MemberCount   int64 `json:"member_count"`
	DocumentCount int64 `json:"document_count"`
	MessageCount  int64 `json:"message_count"`
}

// validateProject checks the shared create/update constraints: name 3-150
// characters, description 10-1000 characters when non-empty.
func validateProject(name string, description *string) error {
	fields := make(map[string]string)

	if len(name) < 3 || len(name) > 150 {
		fields["name"] = "must be between 3 and 150 characters"
	}
	if description != nil && *description != "" {
		if len(*description) < 10 || len(*description) > 1000 {
			fields["description"] = "must be between 10 and 1000 characters"
		}
	}

	if len(fields) > 0 {
		return response.NewValidation(fields)
	}
	return nil
}

// withMembers preloads the membership list ordered by join time so creator
// derivation is deterministic, embedding each member's user id/name/email.
func withMembers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC, id ASC")
		}).
		Preload("Members.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
}

// Create inserts the project and its creator membership (role
// project_manager) in one transaction.
func (s *ProjectService) Create(req *CreateProjectRequest, creatorID uint) (*ProjectDetail, error) {
	if err := validateProject(req.Name, req.Description); err != nil {
		return nil, err
	}

	project := models.Project{
		Name:        req.Name,
		Description: normalizeDescription(req.Description),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    creatorID,
			Role:      models.RoleProjectManager,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(project.ID)
}

// GetByID returns a project with its members and derived creator.
func (s *ProjectService) GetByID(id uint) (*ProjectDetail, error) {
	var project models.Project
	if err := withMembers(s.db).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &ProjectDetail{Project: project, Creator: DeriveCreator(project.Members)}, nil
}

// List returns all projects, or only those the given user is a member of when
// memberUserID is non-nil.
func (s *ProjectService) List(memberUserID *uint) ([]ProjectDetail, error) {
	query := withMembers(s.db).Model(&models.Project{})

	if memberUserID != nil {
		query = query.Where(
			"id IN (?)",
			s.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", *memberUserID),
		)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	details := make([]ProjectDetail, 0, len(projects))
	for _, p := range projects {
		details = append(details, ProjectDetail{Project: p, Creator: DeriveCreator(p.Members)})
	}
	return details, nil
}

// Update mutates name and description; validation mirrors Create. Both fields
// are mandatory on every call: a description-only change must still carry the
// current name.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*ProjectDetail, error) {
	if err := validateProject(req.Name, req.Description); err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": normalizeDescription(req.Description),
	}
	if err := s.db.Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Delete removes the project and every row referencing it. The schema has no
// ON DELETE CASCADE, so dependents are removed leaves-first: task children
// (comments, histories, tag assignments), then tasks and tag definitions,
// then document versions and documents, then chat messages and memberships,
// and finally the project row. The whole sequence runs in one transaction.
// Dependent deletes that match zero rows are not errors; a missing project
// row at the final step is.
func (s *ProjectService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskTagAssignment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		// Tag definitions are safe to remove once their assignments are gone.
		if err := tx.Where("project_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		var docIDs []uint
		if err := tx.Model(&models.Document{}).Where("project_id = ?", id).Pluck("id", &docIDs).Error; err != nil {
			return err
		}
		if len(docIDs) > 0 {
			if err := tx.Where("document_id IN ?", docIDs).Delete(&models.DocumentVersion{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.NewNotFound("project not found")
		}
		return nil
	})

	if err != nil {
		var appErr *response.AppError
		if !errors.As(err, &appErr) {
			logger.Error().Err(err).Uint("project_id", id).Msg("project cascade delete failed")
		}
		return err
	}

	logger.Info().Uint("project_id", id).Msg("project deleted")
	return nil
}

// Stats gathers dependent-entity counts for a project, fanning the four count
// queries out concurrently. Reads only.
func (s *ProjectService) Stats(id uint) (*ProjectStats, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	stats := ProjectStats{ProjectID: id}
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Task{}, &stats.TaskCount},
		{&models.ProjectMember{}, &stats.MemberCount},
		{&models.Document{}, &stats.DocumentCount},
		{&models.ChatMessage{}, &stats.MessageCount},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(counts))
	for i, c := range counts {
		wg.Add(1)
		go func(i int, model interface{}, dest *int64) {
			defer wg.Done()
			errs[i] = s.db.Model(model).Where("project_id = ?", id).Count(dest).Error
		}(i, c.model, c.dest)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

// normalizeDescription maps an empty description to NULL so "absent" and
// "empty" persist the same way.
func normalizeDescription(description *string) *string {
	if description == nil || *description == "" {
		return nil
	}
	return description
}
