package services

import (
	"context"
	"testing"
	"time"

	"github.com/orquestra-app/orquestra/backend/internal/config"
)

func TestTaskTypeNotification_Constant(t *testing.T) {
	if TaskTypeNotification != "notification:deliver" {
		t.Errorf("TaskTypeNotification = %q, expected %q", TaskTypeNotification, "notification:deliver")
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	if err := queue.Close(); err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()
	task := &NotificationTask{NotificationID: 1, UserID: 2, Message: "hi"}

	// Without a processor the task is dropped, not failed.
	if err := queue.Enqueue(task); err != nil {
		t.Errorf("Enqueue without processor should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueInvokesProcessor(t *testing.T) {
	queue := NewSyncQueue()
	processed := make(chan *NotificationTask, 1)
	queue.SetProcessor(func(ctx context.Context, task *NotificationTask) error {
		processed <- task
		return nil
	})

	want := &NotificationTask{NotificationID: 7, UserID: 3, Message: "added"}
	if err := queue.Enqueue(want); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	select {
	case got := <-processed:
		if got.NotificationID != want.NotificationID {
			t.Errorf("NotificationID = %d, expected %d", got.NotificationID, want.NotificationID)
		}
		if got.Message != want.Message {
			t.Errorf("Message = %q, expected %q", got.Message, want.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor was never invoked")
	}
}

func TestWorker_NilWhenRedisDisabled(t *testing.T) {
	worker := NewWorker(&config.RedisConfig{Enabled: false})
	if worker != nil {
		t.Error("NewWorker should return nil when Redis is disabled")
	}
}
