package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"laundrydesk/internal/domain/complaint"
	"laundrydesk/internal/domain/notification"
)

// ComplaintStoreForResolve defines the store interface needed by ResolveComplaint.
type ComplaintStoreForResolve interface {
	Resolve(ctx context.Context, id int64, response string, now time.Time, notifyMessage string) (complaint.Complaint, error)
}

// ResolveComplaintInput carries input for the resolution orchestrator.
type ResolveComplaintInput struct {
	ComplaintID int64
	Response    string
}

// ResolveComplaintDeps holds dependencies for ResolveComplaint.
type ResolveComplaintDeps struct {
	ComplaintStore ComplaintStoreForResolve
	Now            func() time.Time
}

// ExecuteResolveComplaint records the admin's response and notifies the
// student, atomically. Resolving the same complaint again overwrites the
// response and resolution time and appends another notification.
// PRE: Response is a non-empty form value
// POST: Complaint is resolved and the notification committed with it;
// complaint.ErrNotFound when the complaint does not exist
func ExecuteResolveComplaint(ctx context.Context, input ResolveComplaintInput, deps ResolveComplaintDeps) (complaint.Complaint, error) {
	if strings.TrimSpace(input.Response) == "" {
		return complaint.Complaint{}, complaint.ErrEmptyResponse
	}
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	c, err := deps.ComplaintStore.Resolve(ctx, input.ComplaintID, input.Response, now,
		notification.ComplaintResolvedMessage(input.Response))
	if err != nil {
		return complaint.Complaint{}, err
	}

	slog.Info("complaint_event", "event", "complaint_resolved", "complaint_id", c.ID, "student_id", c.StudentID)
	return c, nil
}
