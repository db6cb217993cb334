package web

import (
	"net/http"

	"laundrydesk/internal/adapters/http/middleware"
)

// registerRoutes maps URL patterns to handlers. Student- and admin-only
// routes are wrapped in their authorization gates; violations redirect to
// /login.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", handleHome)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("GET /logout", handleLogout)

	mux.Handle("GET /student/dashboard", middleware.RequireStudent(http.HandlerFunc(handleStudentDashboard)))
	mux.Handle("POST /student/submit_laundry", middleware.RequireStudent(http.HandlerFunc(handleSubmitLaundry)))
	mux.Handle("POST /student/submit_complaint", middleware.RequireStudent(http.HandlerFunc(handleSubmitComplaint)))
	mux.Handle("GET /mark_notification_read/{id}", middleware.RequireStudent(http.HandlerFunc(handleMarkNotificationRead)))

	mux.Handle("GET /admin/dashboard", middleware.RequireAdmin(http.HandlerFunc(handleAdminDashboard)))
	mux.Handle("POST /admin/update_status/{id}", middleware.RequireAdmin(http.HandlerFunc(handleUpdateStatus)))
	mux.Handle("POST /admin/resolve_complaint/{id}", middleware.RequireAdmin(http.HandlerFunc(handleResolveComplaint)))
}
