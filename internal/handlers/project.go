package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/services"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// Create creates a new project; the caller becomes its project_manager
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// List returns projects, restricted to the caller's memberships with
// ?member=me
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var memberUserID *uint
	if c.Query("member") == "me" {
		id := middleware.GetUserID(c)
		memberUserID = &id
	}

	projects, err := h.projectService.List(memberUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// GetByID returns a project with members and derived creator
// GET /api/projects/:projectId
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Update updates name/description
// PUT /api/projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project and everything referencing it. Authorization is
// enforced upstream (creator-or-admin for the normal route, admin-only for
// the force route); both land here.
// DELETE /api/projects/:projectId
// DELETE /api/projects/:projectId/force
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.projectService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "project deleted"})
}

// Stats returns dependent-entity counts for a project
// GET /api/projects/:projectId/stats
func (h *ProjectHandler) Stats(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	stats, err := h.projectService.Stats(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
