package models

import "time"

// Notification types
const (
	NotificationProjectAddition = "project_addition"
)

// Notification is a per-user in-app notification. ProjectID is a plain value,
// not an enforced reference: notifications outlive the projects they mention.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	ProjectID *uint     `json:"project_id,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
