package orchestrators

import (
	"context"
	"log/slog"
)

// NotificationStoreForMarkRead defines the store interface needed by MarkNotificationRead.
type NotificationStoreForMarkRead interface {
	MarkRead(ctx context.Context, id, studentID int64) error
}

// MarkNotificationReadInput carries input for the mark-read orchestrator.
type MarkNotificationReadInput struct {
	NotificationID int64
	StudentID      int64
}

// MarkNotificationReadDeps holds dependencies for MarkNotificationRead.
type MarkNotificationReadDeps struct {
	NotificationStore NotificationStoreForMarkRead
}

// ExecuteMarkNotificationRead flags one of the student's own notifications as
// read. A notification owned by another student reports
// notification.ErrNotFound rather than revealing its existence.
// PRE: StudentID identifies the authenticated student
// POST: is_read is set on the owned notification
func ExecuteMarkNotificationRead(ctx context.Context, input MarkNotificationReadInput, deps MarkNotificationReadDeps) error {
	if err := deps.NotificationStore.MarkRead(ctx, input.NotificationID, input.StudentID); err != nil {
		return err
	}
	slog.Info("notification_event", "event", "marked_read", "notification_id", input.NotificationID, "student_id", input.StudentID)
	return nil
}
