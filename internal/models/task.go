package models

import "time"

// Task belongs to a project and optionally to an assignee.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Status      string    `gorm:"size:50;default:open" json:"status"` // open, in_progress, done
	AssigneeID  *uint     `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// TaskComment is a user comment on a task.
type TaskComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	Task      *Task     `gorm:"foreignKey:TaskID" json:"-"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Body      string    `gorm:"size:2000;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskComment) TableName() string { return "task_comments" }

// TaskHistory records a single field change on a task.
type TaskHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	Task      *Task     `gorm:"foreignKey:TaskID" json:"-"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Field     string    `gorm:"size:50;not null" json:"field"`
	OldValue  string    `gorm:"size:500" json:"old_value"`
	NewValue  string    `gorm:"size:500" json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskHistory) TableName() string { return "task_histories" }

// TaskTag is a project-owned tag definition.
type TaskTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Color     string    `gorm:"size:20" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskTag) TableName() string { return "task_tags" }

// TaskTagAssignment is the junction row binding a tag to a task.
type TaskTagAssignment struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	TaskID uint     `gorm:"uniqueIndex:idx_task_tag;not null" json:"task_id"`
	Task   *Task    `gorm:"foreignKey:TaskID" json:"-"`
	TagID  uint     `gorm:"uniqueIndex:idx_task_tag;not null" json:"tag_id"`
	Tag    *TaskTag `gorm:"foreignKey:TagID" json:"-"`
}

func (TaskTagAssignment) TableName() string { return "task_tag_assignments" }
