package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"laundrydesk/internal/adapters/email"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/notification"
	"laundrydesk/internal/domain/student"
)

// LaundryStoreForStatus defines the laundry store interface needed by UpdateLaundryStatus.
type LaundryStoreForStatus interface {
	UpdateStatus(ctx context.Context, id int64, status string, now time.Time, notifyMessage string) (laundry.Bag, error)
	MarkNotificationSent(ctx context.Context, id int64) error
}

// StudentStoreForStatus defines the student store interface needed by UpdateLaundryStatus.
type StudentStoreForStatus interface {
	GetByID(ctx context.Context, id int64) (student.Student, error)
}

// UpdateLaundryStatusInput carries input for the status orchestrator.
type UpdateLaundryStatusInput struct {
	LaundryID int64
	NewStatus string
}

// UpdateLaundryStatusDeps holds dependencies for UpdateLaundryStatus.
type UpdateLaundryStatusDeps struct {
	LaundryStore LaundryStoreForStatus
	StudentStore StudentStoreForStatus
	EmailSender  email.Sender // optional: nil skips email delivery
	EmailFrom    string
	Now          func() time.Time
}

// ExecuteUpdateLaundryStatus sets a bag's status. When the new status is
// complete, the laundry-ready notification for the owner is written in the
// same transaction; the status update is never persisted without it. After
// commit, an email is sent best-effort when the owner has an address on file.
// PRE: NewStatus is a non-empty form value
// POST: Status and notification are committed atomically; laundry.ErrNotFound
// when the bag does not exist
func ExecuteUpdateLaundryStatus(ctx context.Context, input UpdateLaundryStatusInput, deps UpdateLaundryStatusDeps) (laundry.Bag, error) {
	if err := laundry.ValidateStatus(input.NewStatus); err != nil {
		return laundry.Bag{}, err
	}
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	notifyMessage := ""
	if input.NewStatus == laundry.StatusComplete {
		notifyMessage = notification.LaundryReadyMessage
	}

	bag, err := deps.LaundryStore.UpdateStatus(ctx, input.LaundryID, input.NewStatus, now, notifyMessage)
	if err != nil {
		return laundry.Bag{}, err
	}
	slog.Info("laundry_event", "event", "status_updated", "laundry_id", bag.ID, "status", bag.Status)

	if notifyMessage != "" {
		sendReadyEmail(ctx, deps, bag)
	}
	return bag, nil
}

// sendReadyEmail delivers the laundry-ready email best-effort. Failures are
// logged and never surfaced to the caller.
func sendReadyEmail(ctx context.Context, deps UpdateLaundryStatusDeps, bag laundry.Bag) {
	if deps.EmailSender == nil {
		return
	}
	owner, err := deps.StudentStore.GetByID(ctx, bag.StudentID)
	if err != nil {
		slog.Warn("laundry_email_skipped", "laundry_id", bag.ID, "error", err)
		return
	}
	if owner.Email == "" {
		return
	}

	_, err = deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{owner.Email},
		From:    deps.EmailFrom,
		Subject: "Your laundry is ready",
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>%s</p>",
			owner.FullName, notification.LaundryReadyMessage),
	})
	if err != nil {
		slog.Warn("laundry_email_failed", "laundry_id", bag.ID, "error", err)
		return
	}
	if err := deps.LaundryStore.MarkNotificationSent(ctx, bag.ID); err != nil {
		slog.Warn("laundry_email_flag_failed", "laundry_id", bag.ID, "error", err)
	}
}
