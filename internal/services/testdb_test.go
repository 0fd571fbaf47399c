package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database unique to the test and migrates the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskComment{},
		&models.TaskHistory{},
		&models.TaskTag{},
		&models.TaskTagAssignment{},
		&models.Document{},
		&models.DocumentVersion{},
		&models.ChatMessage{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Password: "x",
		Email:    username + "@example.com",
		Name:     username,
		Role:     "user",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

// createTestProject inserts a project with managerID as its project_manager
// member, mirroring what ProjectService.Create does.
func createTestProject(t *testing.T, db *gorm.DB, name string, managerID uint) *models.Project {
	t.Helper()

	project := models.Project{Name: name}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}
	member := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    managerID,
		Role:      models.RoleProjectManager,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to create manager membership: %v", err)
	}
	return &project
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return count
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func assertAppError(t *testing.T, err error, wantStatus int) *response.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", wantStatus)
	}
	appErr, ok := err.(*response.AppError)
	if !ok {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != wantStatus {
		t.Errorf("HTTPStatus = %d, expected %d (%v)", appErr.HTTPStatus, wantStatus, appErr)
	}
	return appErr
}
