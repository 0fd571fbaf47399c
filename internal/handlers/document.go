package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

// DocumentHandler tracks document metadata and version history. The files
// themselves live in external storage; each version carries an opaque key.
type DocumentHandler struct {
	db *gorm.DB
}

func NewDocumentHandler(db *gorm.DB) *DocumentHandler {
	return &DocumentHandler{db: db}
}

type CreateDocumentRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	FileName string `json:"file_name" binding:"required,max=255"`
}

// Create registers a document with its first version
// POST /api/projects/:projectId/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	document := models.Document{
		ProjectID:  uint(projectID),
		Title:      req.Title,
		FileName:   req.FileName,
		UploadedBy: userID,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
		version := models.DocumentVersion{
			DocumentID: document.ID,
			Version:    1,
			FileKey:    uuid.NewString(),
			UploadedBy: userID,
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, document)
}

// List returns a project's documents
// GET /api/projects/:projectId/documents
func (h *DocumentHandler) List(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var documents []models.Document
	if err := h.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&documents).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, documents)
}

// AddVersion appends a new version to a document
// POST /api/projects/:projectId/documents/:documentId/versions
func (h *DocumentHandler) AddVersion(c *gin.Context) {
	document, ok := h.loadDocument(c)
	if !ok {
		return
	}

	var latest models.DocumentVersion
	next := 1
	err := h.db.Where("document_id = ?", document.ID).
		Order("version DESC").First(&latest).Error
	if err == nil {
		next = latest.Version + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, err)
		return
	}

	version := models.DocumentVersion{
		DocumentID: document.ID,
		Version:    next,
		FileKey:    uuid.NewString(),
		UploadedBy: middleware.GetUserID(c),
	}
	if err := h.db.Create(&version).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, version)
}

// ListVersions returns a document's versions, newest first
// GET /api/projects/:projectId/documents/:documentId/versions
func (h *DocumentHandler) ListVersions(c *gin.Context) {
	document, ok := h.loadDocument(c)
	if !ok {
		return
	}

	var versions []models.DocumentVersion
	if err := h.db.Where("document_id = ?", document.ID).
		Order("version DESC").Find(&versions).Error; err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, versions)
}

func (h *DocumentHandler) loadDocument(c *gin.Context) (*models.Document, bool) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return nil, false
	}
	documentID, err := strconv.ParseUint(c.Param("documentId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return nil, false
	}

	var document models.Document
	if err := h.db.Where("id = ? AND project_id = ?", documentID, projectID).
		First(&document).Error; err != nil {
		response.NotFound(c, "document not found")
		return nil, false
	}
	return &document, true
}
