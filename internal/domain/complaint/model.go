package complaint

import (
	"errors"
	"strings"
	"time"
)

// Status values
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// MaxDescriptionLength bounds the complaint text.
const MaxDescriptionLength = 2000

// Domain errors
var (
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description cannot exceed 2000 characters")
	ErrEmptyResponse      = errors.New("response cannot be empty")
	ErrNotFound           = errors.New("complaint not found")
)

// Complaint holds state for a complaint filed against one laundry bag.
type Complaint struct {
	ID            int64
	StudentID     int64
	LaundryID     int64
	Description   string
	Status        string
	DateSubmitted time.Time
	AdminResponse string    // empty until resolved
	DateResolved  time.Time // zero until resolved
}

// Validate checks if the Complaint has valid data.
// PRE: Complaint struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Complaint) Validate() error {
	if strings.TrimSpace(c.Description) == "" {
		return ErrEmptyDescription
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Resolve records the admin's response. Resolving an already-resolved
// complaint overwrites the response and resolution time with the new values.
// PRE: response is non-empty
// POST: Status is resolved, AdminResponse and DateResolved are set
func (c *Complaint) Resolve(response string, now time.Time) error {
	if strings.TrimSpace(response) == "" {
		return ErrEmptyResponse
	}
	c.Status = StatusResolved
	c.AdminResponse = response
	c.DateResolved = now
	return nil
}

// IsResolved returns true if the complaint has been answered.
// The value receiver keeps it callable on complaints ranged over in templates.
func (c Complaint) IsResolved() bool {
	return c.Status == StatusResolved
}
