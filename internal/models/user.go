package models

import "time"

// User represents a system user
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash
	Email     string    `gorm:"size:255" json:"email"`
	Name      string    `gorm:"size:150" json:"name"`
	Role      string    `gorm:"size:50;default:user" json:"role"` // admin, developer, user
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
