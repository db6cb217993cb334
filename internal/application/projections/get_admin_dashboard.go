package projections

import (
	"context"
	"strings"
	"time"

	"laundrydesk/internal/domain/complaint"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/student"
)

// GetAdminDashboardQuery carries query parameters.
type GetAdminDashboardQuery struct {
	Search string // case-insensitive substring match on student full name
}

// AdminLaundryRow is one laundry bag joined with its owner's info.
type AdminLaundryRow struct {
	Bag        laundry.Bag
	FullName   string
	RoomNumber string
	Gender     string
}

// AdminComplaintRow is one complaint joined with student and bag info.
type AdminComplaintRow struct {
	Complaint   complaint.Complaint
	FullName    string
	LaundryDate time.Time // when the complained-about bag was submitted
}

// GetAdminDashboardResult carries everything the admin dashboard renders.
type GetAdminDashboardResult struct {
	LaundryRows   []AdminLaundryRow   // newest first, filtered by Search
	ComplaintRows []AdminComplaintRow // newest first, unfiltered
	Search        string
}

// GetAdminDashboardDeps holds dependencies for GetAdminDashboard.
type GetAdminDashboardDeps struct {
	StudentStore   StudentStore
	LaundryStore   LaundryStore
	ComplaintStore ComplaintStore
}

// QueryGetAdminDashboard aggregates all bags joined with owner info, filtered
// by an optional name search, plus all complaints joined with student and bag
// info. The search filter applies to the laundry list only.
// POST: Both lists are newest first
func QueryGetAdminDashboard(ctx context.Context, query GetAdminDashboardQuery, deps GetAdminDashboardDeps) (GetAdminDashboardResult, error) {
	students, err := deps.StudentStore.List(ctx)
	if err != nil {
		return GetAdminDashboardResult{}, err
	}
	byID := make(map[int64]student.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	bags, err := deps.LaundryStore.List(ctx)
	if err != nil {
		return GetAdminDashboardResult{}, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	bagDates := make(map[int64]time.Time, len(bags))
	var laundryRows []AdminLaundryRow
	for _, b := range bags {
		bagDates[b.ID] = b.DateSubmitted
		owner := byID[b.StudentID]
		if search != "" && !strings.Contains(strings.ToLower(owner.FullName), search) {
			continue
		}
		laundryRows = append(laundryRows, AdminLaundryRow{
			Bag:        b,
			FullName:   owner.FullName,
			RoomNumber: owner.RoomNumber,
			Gender:     owner.Gender,
		})
	}

	complaints, err := deps.ComplaintStore.List(ctx)
	if err != nil {
		return GetAdminDashboardResult{}, err
	}
	var complaintRows []AdminComplaintRow
	for _, c := range complaints {
		complaintRows = append(complaintRows, AdminComplaintRow{
			Complaint:   c,
			FullName:    byID[c.StudentID].FullName,
			LaundryDate: bagDates[c.LaundryID],
		})
	}

	return GetAdminDashboardResult{
		LaundryRows:   laundryRows,
		ComplaintRows: complaintRows,
		Search:        query.Search,
	}, nil
}
