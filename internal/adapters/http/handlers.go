package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"laundrydesk/internal/adapters/http/middleware"
	"laundrydesk/internal/application/orchestrators"
	"laundrydesk/internal/application/projections"
	complaintDomain "laundrydesk/internal/domain/complaint"
	laundryDomain "laundrydesk/internal/domain/laundry"
	notificationDomain "laundrydesk/internal/domain/notification"
	studentDomain "laundrydesk/internal/domain/student"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

const templatesDir = "internal/adapters/http/templates"

// flashCookieName carries a one-shot user message across a redirect.
const flashCookieName = "laundrydesk_flash"

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// popFlash reads and clears the flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

// userErrors are domain errors whose text is safe to show to the user.
var userErrors = []error{
	studentDomain.ErrEmptyFullName,
	studentDomain.ErrFullNameTooLong,
	studentDomain.ErrEmptyRoomNumber,
	studentDomain.ErrEmptyGender,
	studentDomain.ErrInvalidEmail,
	studentDomain.ErrEmptyPassword,
	studentDomain.ErrPasswordTooShort,
	studentDomain.ErrDuplicateName,
	studentDomain.ErrNotFound,
	laundryDomain.ErrBagLimitReached,
	laundryDomain.ErrEmptyStatus,
	laundryDomain.ErrNotFound,
	complaintDomain.ErrEmptyDescription,
	complaintDomain.ErrDescriptionTooLong,
	complaintDomain.ErrEmptyResponse,
	complaintDomain.ErrNotFound,
	notificationDomain.ErrNotFound,
	orchestrators.ErrInvalidCredentials,
}

// userMessage converts any error into a user-visible transient message.
// Store and transaction failures are logged and masked behind a generic text.
func userMessage(err error) string {
	for _, known := range userErrors {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	slog.Error("internal_error", "error", err.Error())
	return "Something went wrong. Please try again."
}

// flashAndRedirect converts err to a flash message and redirects to a safe page.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, err error, target string) {
	setFlash(w, userMessage(err))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// parsePathID parses the {id} path segment as a positive integer.
func parsePathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	if ok {
		role = sess.Role
		name = sess.FullName
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return role },
		"currentName": func() string { return name },
		"isLoggedIn":  func() bool { return role != "" },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	if data == nil {
		data = map[string]any{}
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome redirects authenticated sessions to their dashboard and shows
// the landing page to everyone else.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if sess.IsAdmin() {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		} else {
			http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
		}
		return
	}
	renderTemplate(w, r, "index.html", map[string]any{
		"Flash": popFlash(w, r),
	})
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Flash": popFlash(w, r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			FullName: r.FormValue("full_name"),
			Password: r.FormValue("password"),
		}
		deps := orchestrators.LoginDeps{
			StudentStore: stores.StudentStore,
			Admin:        adminVerifier,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": userMessage(err),
			})
			return
		}

		token := sessions.Create(result.Role, result.StudentID, result.FullName)
		middleware.SetSessionCookie(w, token)

		if result.Role == orchestrators.RoleAdmin {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRegister handles GET (form) and POST (create student) for /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "register.html", map[string]any{
			"Flash":      popFlash(w, r),
			"FullName":   "",
			"RoomNumber": "",
			"Gender":     "",
			"Email":      "",
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.RegisterStudentInput{
			FullName:   r.FormValue("full_name"),
			Password:   r.FormValue("password"),
			RoomNumber: r.FormValue("room_number"),
			Gender:     r.FormValue("gender"),
			Email:      r.FormValue("email"),
		}
		deps := orchestrators.RegisterStudentDeps{
			StudentStore: stores.StudentStore,
			Now:          timeNow,
		}

		if _, err := orchestrators.ExecuteRegisterStudent(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "register.html", map[string]any{
				"Error":      userMessage(err),
				"FullName":   input.FullName,
				"RoomNumber": input.RoomNumber,
				"Gender":     input.Gender,
				"Email":      input.Email,
			})
			return
		}

		setFlash(w, "Registration successful! Please login.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleStudentDashboard renders the student's view model.
func handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetStudentDashboard(r.Context(),
		projections.GetStudentDashboardQuery{StudentID: sess.StudentID},
		projections.GetStudentDashboardDeps{
			StudentStore:      stores.StudentStore,
			LaundryStore:      stores.LaundryStore,
			ComplaintStore:    stores.ComplaintStore,
			NotificationStore: stores.NotificationStore,
		})
	if err != nil {
		flashAndRedirect(w, r, err, "/")
		return
	}

	renderTemplate(w, r, "student_dashboard.html", map[string]any{
		"Flash":     popFlash(w, r),
		"Dashboard": result,
	})
}

// handleSubmitLaundry creates a bag for the logged-in student, limit-checked.
func handleSubmitLaundry(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := orchestrators.SubmitLaundryDeps{
		LaundryStore: stores.LaundryStore,
		Now:          timeNow,
	}
	if _, err := orchestrators.ExecuteSubmitLaundry(r.Context(),
		orchestrators.SubmitLaundryInput{StudentID: sess.StudentID}, deps); err != nil {
		flashAndRedirect(w, r, err, "/student/dashboard")
		return
	}

	setFlash(w, "Laundry submitted successfully!")
	http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
}

// handleSubmitComplaint files a complaint against one of the student's bags.
func handleSubmitComplaint(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	laundryID, err := strconv.ParseInt(r.FormValue("laundry_id"), 10, 64)
	if err != nil || laundryID <= 0 {
		flashAndRedirect(w, r, laundryDomain.ErrNotFound, "/student/dashboard")
		return
	}

	input := orchestrators.SubmitComplaintInput{
		StudentID:   sess.StudentID,
		LaundryID:   laundryID,
		Description: r.FormValue("description"),
	}
	deps := orchestrators.SubmitComplaintDeps{
		LaundryStore:   stores.LaundryStore,
		ComplaintStore: stores.ComplaintStore,
		Now:            timeNow,
	}
	if _, err := orchestrators.ExecuteSubmitComplaint(r.Context(), input, deps); err != nil {
		flashAndRedirect(w, r, err, "/student/dashboard")
		return
	}

	setFlash(w, "Complaint submitted successfully!")
	http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
}

// handleMarkNotificationRead marks one of the student's notifications read.
func handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	id, err := parsePathID(r)
	if err != nil {
		flashAndRedirect(w, r, notificationDomain.ErrNotFound, "/student/dashboard")
		return
	}

	deps := orchestrators.MarkNotificationReadDeps{NotificationStore: stores.NotificationStore}
	if err := orchestrators.ExecuteMarkNotificationRead(r.Context(),
		orchestrators.MarkNotificationReadInput{NotificationID: id, StudentID: sess.StudentID}, deps); err != nil {
		flashAndRedirect(w, r, err, "/student/dashboard")
		return
	}

	http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
}

// handleAdminDashboard renders all laundry and complaints, with an optional
// name search on the laundry list.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetAdminDashboard(r.Context(),
		projections.GetAdminDashboardQuery{Search: r.URL.Query().Get("search")},
		projections.GetAdminDashboardDeps{
			StudentStore:   stores.StudentStore,
			LaundryStore:   stores.LaundryStore,
			ComplaintStore: stores.ComplaintStore,
		})
	if err != nil {
		flashAndRedirect(w, r, err, "/")
		return
	}

	renderTemplate(w, r, "admin_dashboard.html", map[string]any{
		"Flash":     popFlash(w, r),
		"Dashboard": result,
	})
}

// handleUpdateStatus sets a bag's status; completing a bag notifies its owner.
func handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		flashAndRedirect(w, r, laundryDomain.ErrNotFound, "/admin/dashboard")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.UpdateLaundryStatusInput{
		LaundryID: id,
		NewStatus: r.FormValue("status"),
	}
	deps := orchestrators.UpdateLaundryStatusDeps{
		LaundryStore: stores.LaundryStore,
		StudentStore: stores.StudentStore,
		EmailSender:  emailSender,
		EmailFrom:    emailFromAddress,
		Now:          timeNow,
	}
	bag, err := orchestrators.ExecuteUpdateLaundryStatus(r.Context(), input, deps)
	if err != nil {
		flashAndRedirect(w, r, err, "/admin/dashboard")
		return
	}

	setFlash(w, "Status updated to "+bag.Status+"!")
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// handleResolveComplaint records the admin response and notifies the student.
func handleResolveComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		flashAndRedirect(w, r, complaintDomain.ErrNotFound, "/admin/dashboard")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.ResolveComplaintInput{
		ComplaintID: id,
		Response:    r.FormValue("response"),
	}
	deps := orchestrators.ResolveComplaintDeps{
		ComplaintStore: stores.ComplaintStore,
		Now:            timeNow,
	}
	if _, err := orchestrators.ExecuteResolveComplaint(r.Context(), input, deps); err != nil {
		flashAndRedirect(w, r, err, "/admin/dashboard")
		return
	}

	setFlash(w, "Complaint resolved successfully!")
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// handleLogout clears the session and returns to the landing page.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
