package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/orquestra-app/orquestra/backend/internal/models"
)

func TestNotifyProjectAddition(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "alice")

	if err := svc.NotifyProjectAddition(user.ID, 42, "Orquestra Core"); err != nil {
		t.Fatalf("NotifyProjectAddition failed: %v", err)
	}

	notifications, err := svc.List(user.ID, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("notification count = %d, expected 1", len(notifications))
	}
	n := notifications[0]
	if n.Type != models.NotificationProjectAddition {
		t.Errorf("Type = %q, expected %q", n.Type, models.NotificationProjectAddition)
	}
	if n.IsRead {
		t.Error("new notification should be unread")
	}
	if n.ProjectID == nil || *n.ProjectID != 42 {
		t.Errorf("ProjectID = %v, expected 42", n.ProjectID)
	}
	if n.Message != `You were added to project "Orquestra Core"` {
		t.Errorf("unexpected message: %q", n.Message)
	}
}

func TestNotifyProjectAddition_EnqueuesDelivery(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	queue := NewSyncQueue()
	delivered := make(chan *NotificationTask, 1)
	queue.SetProcessor(func(ctx context.Context, task *NotificationTask) error {
		delivered <- task
		return nil
	})

	svc := NewNotificationService(db, queue)
	if err := svc.NotifyProjectAddition(user.ID, 42, "Orquestra Core"); err != nil {
		t.Fatalf("NotifyProjectAddition failed: %v", err)
	}

	select {
	case task := <-delivered:
		if task.UserID != user.ID {
			t.Errorf("task.UserID = %d, expected %d", task.UserID, user.ID)
		}
		if task.NotificationID == 0 {
			t.Error("task.NotificationID should be set")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delivery task was never processed")
	}
}

func TestListNotifications_UnreadOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "alice")

	for i := 0; i < 3; i++ {
		if err := svc.NotifyProjectAddition(user.ID, uint(i+1), "P"); err != nil {
			t.Fatal(err)
		}
	}
	all, err := svc.List(user.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.MarkRead(user.ID, all[0].ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	unread, err := svc.List(user.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(unread) != 2 {
		t.Errorf("unread count = %d, expected 2", len(unread))
	}

	count, err := svc.UnreadCount(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("UnreadCount = %d, expected 2", count)
	}
}

func TestMarkRead_WrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := svc.NotifyProjectAddition(alice.ID, 1, "P"); err != nil {
		t.Fatal(err)
	}
	notifications, err := svc.List(alice.ID, false)
	if err != nil {
		t.Fatal(err)
	}

	// Another user cannot mark someone else's notification.
	err = svc.MarkRead(bob.ID, notifications[0].ID)
	assertAppError(t, err, http.StatusNotFound)
}

func TestMarkRead_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "alice")

	err := svc.MarkRead(user.ID, 12345)
	assertAppError(t, err, http.StatusNotFound)
}

func TestPurgeRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createTestUser(t, db, "alice")

	old := models.Notification{
		UserID:    user.ID,
		Type:      models.NotificationProjectAddition,
		Message:   "old and read",
		IsRead:    true,
		CreatedAt: time.Now().AddDate(0, 0, -60),
	}
	oldUnread := models.Notification{
		UserID:    user.ID,
		Type:      models.NotificationProjectAddition,
		Message:   "old but unread",
		CreatedAt: time.Now().AddDate(0, 0, -60),
	}
	recent := models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationProjectAddition,
		Message: "recent and read",
		IsRead:  true,
	}
	for _, n := range []*models.Notification{&old, &oldUnread, &recent} {
		if err := db.Create(n).Error; err != nil {
			t.Fatal(err)
		}
	}

	purged, err := svc.PurgeRead(30)
	if err != nil {
		t.Fatalf("PurgeRead failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, expected 1", purged)
	}

	remaining, err := svc.List(user.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining = %d, expected 2", len(remaining))
	}
	for _, n := range remaining {
		if n.Message == "old and read" {
			t.Error("old read notification survived the purge")
		}
	}
}

func TestDeliver_PurgedNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	// A notification purged before delivery is not an error.
	err := svc.Deliver(context.Background(), &NotificationTask{NotificationID: 12345})
	if err != nil {
		t.Errorf("Deliver of a missing notification should be a no-op, got %v", err)
	}
}
