package models

import "time"

// Document holds metadata about an uploaded project document. File storage
// itself lives outside this service; only the version history is tracked here.
type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"index;not null" json:"project_id"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	UploadedBy uint      `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// DocumentVersion is one stored revision of a document.
type DocumentVersion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID uint      `gorm:"index;not null" json:"document_id"`
	Document   *Document `gorm:"foreignKey:DocumentID" json:"-"`
	Version    int       `gorm:"not null" json:"version"`
	FileKey    string    `gorm:"size:255;not null" json:"file_key"` // opaque storage key
	UploadedBy uint      `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (DocumentVersion) TableName() string { return "document_versions" }
