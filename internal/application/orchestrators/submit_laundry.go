package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"laundrydesk/internal/domain/laundry"
)

// LaundryStoreForSubmit defines the store interface needed by SubmitLaundry.
type LaundryStoreForSubmit interface {
	Submit(ctx context.Context, studentID int64, now time.Time) (laundry.Bag, error)
}

// SubmitLaundryInput carries input for the submission orchestrator.
type SubmitLaundryInput struct {
	StudentID int64
}

// SubmitLaundryDeps holds dependencies for SubmitLaundry.
type SubmitLaundryDeps struct {
	LaundryStore LaundryStoreForSubmit
	Now          func() time.Time
}

// ExecuteSubmitLaundry creates a pending bag for the student.
// The active-bag limit is enforced by the store inside one transaction, so
// concurrent submissions cannot overshoot it.
// PRE: StudentID identifies the authenticated student
// POST: A pending bag exists, or ErrBagLimitReached with no row inserted
func ExecuteSubmitLaundry(ctx context.Context, input SubmitLaundryInput, deps SubmitLaundryDeps) (laundry.Bag, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	bag, err := deps.LaundryStore.Submit(ctx, input.StudentID, now)
	if err != nil {
		return laundry.Bag{}, err
	}

	slog.Info("laundry_event", "event", "bag_submitted", "laundry_id", bag.ID, "student_id", input.StudentID)
	return bag, nil
}
