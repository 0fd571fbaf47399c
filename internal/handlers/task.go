package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

// TaskHandler provides task endpoints within a project. Membership gating
// happens in middleware; handlers only verify that the task belongs to the
// project named in the URL.
type TaskHandler struct {
	db *gorm.DB
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{db: db}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	AssigneeID  *uint  `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress done"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"max=20"`
}

type AssignTagRequest struct {
	TagID uint `json:"tag_id" binding:"required"`
}

// Create creates a task in a project
// POST /api/projects/:projectId/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task := models.Task{
		ProjectID:   uint(projectID),
		Title:       req.Title,
		Description: req.Description,
		Status:      "open",
		AssigneeID:  req.AssigneeID,
	}
	if err := h.db.Create(&task).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

// List returns a project's tasks
// GET /api/projects/:projectId/tasks
func (h *TaskHandler) List(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var tasks []models.Task
	if err := h.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&tasks).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// UpdateStatus changes a task's status and records the change in its history
// PUT /api/projects/:projectId/tasks/:taskId
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Status == task.Status {
		response.Success(c, task)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		history := models.TaskHistory{
			TaskID:   task.ID,
			UserID:   middleware.GetUserID(c),
			Field:    "status",
			OldValue: task.Status,
			NewValue: req.Status,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return tx.Model(task).Update("status", req.Status).Error
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// CreateComment adds a comment to a task
// POST /api/projects/:projectId/tasks/:taskId/comments
func (h *TaskHandler) CreateComment(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment := models.TaskComment{
		TaskID: task.ID,
		UserID: middleware.GetUserID(c),
		Body:   req.Body,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment)
}

// ListComments returns a task's comments, oldest first
// GET /api/projects/:projectId/tasks/:taskId/comments
func (h *TaskHandler) ListComments(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var comments []models.TaskComment
	if err := h.db.Where("task_id = ?", task.ID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

// CreateTag defines a tag in a project
// POST /api/projects/:projectId/tags
func (h *TaskHandler) CreateTag(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag := models.TaskTag{
		ProjectID: uint(projectID),
		Name:      req.Name,
		Color:     req.Color,
	}
	if err := h.db.Create(&tag).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, tag)
}

// ListTags returns a project's tag definitions
// GET /api/projects/:projectId/tags
func (h *TaskHandler) ListTags(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var tags []models.TaskTag
	if err := h.db.Where("project_id = ?", projectID).Find(&tags).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tags)
}

// AssignTag binds a project tag to a task
// POST /api/projects/:projectId/tasks/:taskId/tags
func (h *TaskHandler) AssignTag(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	var req AssignTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var tag models.TaskTag
	if err := h.db.Where("id = ? AND project_id = ?", req.TagID, task.ProjectID).
		First(&tag).Error; err != nil {
		response.NotFound(c, "tag not found")
		return
	}

	var existing models.TaskTagAssignment
	if err := h.db.Where("task_id = ? AND tag_id = ?", task.ID, tag.ID).
		First(&existing).Error; err == nil {
		response.Success(c, existing)
		return
	}

	assignment := models.TaskTagAssignment{TaskID: task.ID, TagID: tag.ID}
	if err := h.db.Create(&assignment).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, assignment)
}

// loadTask resolves :taskId within :projectId, writing the error response on
// failure.
func (h *TaskHandler) loadTask(c *gin.Context) (*models.Task, bool) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return nil, false
	}
	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return nil, false
	}

	var task models.Task
	if err := h.db.Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error; err != nil {
		response.NotFound(c, "task not found")
		return nil, false
	}
	return &task, true
}
