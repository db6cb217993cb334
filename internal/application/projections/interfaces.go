package projections

import (
	"context"

	"laundrydesk/internal/domain/complaint"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/notification"
	"laundrydesk/internal/domain/student"
)

// StudentStore is the student store interface used by projections.
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (student.Student, error)
	List(ctx context.Context) ([]student.Student, error)
}

// LaundryStore is the laundry store interface used by projections.
type LaundryStore interface {
	ListByStudent(ctx context.Context, studentID int64) ([]laundry.Bag, error)
	List(ctx context.Context) ([]laundry.Bag, error)
	CountActive(ctx context.Context, studentID int64) (int, error)
}

// ComplaintStore is the complaint store interface used by projections.
type ComplaintStore interface {
	ListByStudent(ctx context.Context, studentID int64) ([]complaint.Complaint, error)
	List(ctx context.Context) ([]complaint.Complaint, error)
}

// NotificationStore is the notification store interface used by projections.
type NotificationStore interface {
	ListUnread(ctx context.Context, studentID int64) ([]notification.Notification, error)
}
