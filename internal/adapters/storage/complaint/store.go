package complaint

import (
	"context"
	"time"

	domain "laundrydesk/internal/domain/complaint"
)

// Store persists Complaint state.
type Store interface {
	Create(ctx context.Context, value domain.Complaint) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Complaint, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	Resolve(ctx context.Context, id int64, response string, now time.Time, notifyMessage string) (domain.Complaint, error)
}
