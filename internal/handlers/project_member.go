package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/services"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
)

// ProjectMemberHandler provides membership endpoints for projects.
type ProjectMemberHandler struct {
	memberService *services.MemberService
}

func NewProjectMemberHandler(memberService *services.MemberService) *ProjectMemberHandler {
	return &ProjectMemberHandler{memberService: memberService}
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// List returns all members of a project
// GET /api/projects/:projectId/members
func (h *ProjectMemberHandler) List(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	members, err := h.memberService.List(uint(projectID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// Add adds a user to a project, or updates the role of an existing member
// POST /api/projects/:projectId/members
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Add(uint(projectID), req.UserID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member)
}

// Remove removes a member from a project
// DELETE /api/projects/:projectId/members/:userId
func (h *ProjectMemberHandler) Remove(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.memberService.Remove(uint(projectID), uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed"})
}
