package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"laundrydesk/internal/domain/complaint"
	"laundrydesk/internal/domain/laundry"
)

// LaundryStoreForComplaint defines the laundry store interface needed by SubmitComplaint.
type LaundryStoreForComplaint interface {
	GetByID(ctx context.Context, id int64) (laundry.Bag, error)
}

// ComplaintStoreForSubmit defines the complaint store interface needed by SubmitComplaint.
type ComplaintStoreForSubmit interface {
	Create(ctx context.Context, c complaint.Complaint) (int64, error)
}

// SubmitComplaintInput carries input for the complaint orchestrator.
type SubmitComplaintInput struct {
	StudentID   int64
	LaundryID   int64
	Description string
}

// SubmitComplaintDeps holds dependencies for SubmitComplaint.
type SubmitComplaintDeps struct {
	LaundryStore   LaundryStoreForComplaint
	ComplaintStore ComplaintStoreForSubmit
	Now            func() time.Time
}

// ExecuteSubmitComplaint files a pending complaint against one of the
// student's own bags. A bag that does not exist or belongs to another student
// reports laundry.ErrNotFound; ownership of other students' bags is never
// revealed.
// PRE: StudentID identifies the authenticated student
// POST: A pending complaint row exists referencing the bag
func ExecuteSubmitComplaint(ctx context.Context, input SubmitComplaintInput, deps SubmitComplaintDeps) (complaint.Complaint, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	bag, err := deps.LaundryStore.GetByID(ctx, input.LaundryID)
	if err != nil {
		return complaint.Complaint{}, err
	}
	if bag.StudentID != input.StudentID {
		slog.Info("complaint_event", "event", "ownership_rejected", "laundry_id", input.LaundryID, "student_id", input.StudentID)
		return complaint.Complaint{}, laundry.ErrNotFound
	}

	c := complaint.Complaint{
		StudentID:     input.StudentID,
		LaundryID:     input.LaundryID,
		Description:   input.Description,
		Status:        complaint.StatusPending,
		DateSubmitted: now,
	}
	if err := c.Validate(); err != nil {
		return complaint.Complaint{}, err
	}

	id, err := deps.ComplaintStore.Create(ctx, c)
	if err != nil {
		return complaint.Complaint{}, err
	}
	c.ID = id

	slog.Info("complaint_event", "event", "complaint_submitted", "complaint_id", id, "laundry_id", input.LaundryID, "student_id", input.StudentID)
	return c, nil
}
