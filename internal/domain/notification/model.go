package notification

import (
	"errors"
	"fmt"
	"time"
)

// LaundryReadyMessage is sent when a bag reaches the complete status.
const LaundryReadyMessage = "Your laundry is ready for collection!"

// Domain errors
var (
	ErrNotFound = errors.New("notification not found")
)

// Notification holds one message delivered to a student's dashboard.
type Notification struct {
	ID          int64
	StudentID   int64
	Message     string
	DateCreated time.Time
	IsRead      bool
}

// ComplaintResolvedMessage builds the notification text for a resolved complaint.
// PRE: response is the admin's resolution text
// POST: Returns the message embedding the response
func ComplaintResolvedMessage(response string) string {
	return fmt.Sprintf("Your complaint has been resolved. Response: %s", response)
}
