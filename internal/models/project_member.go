package models

import "time"

// ProjectMember binds a user to a project with a role. A user holds at most
// one membership row per project; re-adding with a different role updates the
// row in place.
//
// The project "creator" is not stored anywhere: it is the member with role
// RoleProjectManager and the earliest JoinedAt.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:50;not null" json:"role"` // project_manager, developer, team_leader, supervisor, tutor, admin
	JoinedAt  time.Time `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}

func (ProjectMember) TableName() string { return "project_members" }

// RoleProjectManager is the only role with special meaning: the earliest
// member carrying it is the project's derived creator.
const RoleProjectManager = "project_manager"
