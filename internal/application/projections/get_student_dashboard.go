package projections

import (
	"context"

	"laundrydesk/internal/domain/complaint"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/notification"
	"laundrydesk/internal/domain/student"
)

// GetStudentDashboardQuery carries query parameters.
type GetStudentDashboardQuery struct {
	StudentID int64
}

// GetStudentDashboardResult carries everything the student dashboard renders.
type GetStudentDashboardResult struct {
	Student             student.Student
	Bags                []laundry.Bag               // newest first
	ActiveBagCount      int
	CanSubmit           bool
	UnreadNotifications []notification.Notification // newest first
	Complaints          []complaint.Complaint       // newest first
}

// GetStudentDashboardDeps holds dependencies for GetStudentDashboard.
type GetStudentDashboardDeps struct {
	StudentStore      StudentStore
	LaundryStore      LaundryStore
	ComplaintStore    ComplaintStore
	NotificationStore NotificationStore
}

// QueryGetStudentDashboard aggregates the student's profile, bags, unread
// notifications and complaints into one view model.
// PRE: StudentID identifies the authenticated student
// POST: Returns all lists newest first
func QueryGetStudentDashboard(ctx context.Context, query GetStudentDashboardQuery, deps GetStudentDashboardDeps) (GetStudentDashboardResult, error) {
	s, err := deps.StudentStore.GetByID(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}

	bags, err := deps.LaundryStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}

	active := 0
	for i := range bags {
		if bags[i].IsActive() {
			active++
		}
	}

	unread, err := deps.NotificationStore.ListUnread(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}

	complaints, err := deps.ComplaintStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}

	return GetStudentDashboardResult{
		Student:             s,
		Bags:                bags,
		ActiveBagCount:      active,
		CanSubmit:           active < laundry.MaxActiveBags,
		UnreadNotifications: unread,
		Complaints:          complaints,
	}, nil
}
