package laundry

import (
	"context"
	"time"

	domain "laundrydesk/internal/domain/laundry"
)

// Store persists LaundryBag state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Bag, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Bag, error)
	List(ctx context.Context) ([]domain.Bag, error)
	CountActive(ctx context.Context, studentID int64) (int, error)
	Submit(ctx context.Context, studentID int64, now time.Time) (domain.Bag, error)
	UpdateStatus(ctx context.Context, id int64, status string, now time.Time, notifyMessage string) (domain.Bag, error)
	MarkNotificationSent(ctx context.Context, id int64) error
}
