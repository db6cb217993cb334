package notification

import (
	"context"

	domain "laundrydesk/internal/domain/notification"
)

// Store persists Notification state.
type Store interface {
	Create(ctx context.Context, value domain.Notification) (int64, error)
	ListUnread(ctx context.Context, studentID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, studentID int64) error
}
