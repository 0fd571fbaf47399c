package models

import "time"

// Project is the top-level unit of work containing tasks, documents,
// chat and members.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:150;not null" json:"name"`
	Description *string         `gorm:"size:1000" json:"description,omitempty"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
