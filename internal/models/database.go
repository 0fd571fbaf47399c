package models

import (
	"fmt"

	"github.com/orquestra-app/orquestra/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

// AutoMigrate creates or updates the schema. The project dependency graph
// (tasks, documents, chat, memberships) carries plain foreign keys without
// ON DELETE CASCADE; project deletion removes dependents explicitly in
// dependency order.
func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Project{},
		&ProjectMember{},
		&Task{},
		&TaskComment{},
		&TaskHistory{},
		&TaskTag{},
		&TaskTagAssignment{},
		&Document{},
		&DocumentVersion{},
		&ChatMessage{},
		&Notification{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
