package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

// ChatHandler provides project chat endpoints.
type ChatHandler struct {
	db *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// Post appends a message to the project chat
// POST /api/projects/:projectId/chat
func (h *ChatHandler) Post(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message := models.ChatMessage{
		ProjectID: uint(projectID),
		UserID:    middleware.GetUserID(c),
		Body:      req.Body,
	}
	if err := h.db.Create(&message).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message)
}

// List returns project chat messages, oldest first
// GET /api/projects/:projectId/chat
func (h *ChatHandler) List(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var messages []models.ChatMessage
	if err := h.db.Where("project_id = ?", projectID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, messages)
}
