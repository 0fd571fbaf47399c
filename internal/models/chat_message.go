package models

import "time"

// ChatMessage is a message in a project's chat room.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Body      string    `gorm:"size:4000;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
