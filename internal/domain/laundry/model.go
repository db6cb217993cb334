package laundry

import (
	"errors"
	"strings"
	"time"
)

// Status values written by the application. Admins may also set free-text
// statuses; only the literals below carry special meaning.
const (
	StatusPending   = "pending"
	StatusWashing   = "washing"
	StatusComplete  = "complete"
	StatusCollected = "collected"
)

// MaxActiveBags is the number of bags a student may have in any status other
// than collected or complete.
const MaxActiveBags = 2

// Domain errors
var (
	ErrBagLimitReached = errors.New("you have reached the maximum limit of active laundry bags")
	ErrEmptyStatus     = errors.New("status cannot be empty")
	ErrNotFound        = errors.New("laundry bag not found")
)

// Bag holds state for one submitted laundry bag.
type Bag struct {
	ID               int64
	StudentID        int64
	Status           string
	DateSubmitted    time.Time
	NotificationSent bool // set once a laundry-ready email was delivered
}

// IsActive returns true if the bag counts toward the student's bag limit.
// INVARIANT: Bag fields are not mutated
func (b Bag) IsActive() bool {
	return b.Status != StatusCollected && b.Status != StatusComplete
}

// ValidateStatus checks that an admin-supplied status value is usable.
// PRE: status comes from a form field
// POST: Returns nil if non-empty after trimming
func ValidateStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return ErrEmptyStatus
	}
	return nil
}
