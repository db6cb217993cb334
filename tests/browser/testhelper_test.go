package browser_test

import (
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	emailPkg "laundrydesk/internal/adapters/email"
	web "laundrydesk/internal/adapters/http"
	"laundrydesk/internal/adapters/http/middleware"
	"laundrydesk/internal/adapters/storage"
	complaintStore "laundrydesk/internal/adapters/storage/complaint"
	laundryStore "laundrydesk/internal/adapters/storage/laundry"
	notificationStore "laundrydesk/internal/adapters/storage/notification"
	studentStore "laundrydesk/internal/adapters/storage/student"
	"laundrydesk/internal/application/orchestrators"
)

const (
	adminName     = "admin"
	adminPassword = "TestPass123!"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}

	stores := &web.Stores{
		StudentStore:      studentStore.NewSQLiteStore(db),
		LaundryStore:      laundryStore.NewSQLiteStore(db),
		ComplaintStore:    complaintStore.NewSQLiteStore(db),
		NotificationStore: notificationStore.NewSQLiteStore(db),
	}

	admin, err := orchestrators.NewEnvAdminVerifier(adminName, adminPassword)
	if err != nil {
		t.Fatalf("failed to build admin verifier: %v", err)
	}
	web.SetEmailSender(emailPkg.NewNoopSender(), "Laundrydesk <noreply@test.local>")

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	mux := web.NewMux("static", stores, admin)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login submits the login form and waits for the dashboard redirect.
func (a *testApp) login(t *testing.T, page playwright.Page, fullName, password, wantURL string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=full_name]").Fill(fullName); err != nil {
		t.Fatalf("failed to fill full name: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+wantURL, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to %s: %v", wantURL, err)
	}
}

func (a *testApp) loginAdmin(t *testing.T, page playwright.Page) {
	t.Helper()
	a.login(t, page, adminName, adminPassword, "/admin/dashboard")
}

func (a *testApp) loginStudent(t *testing.T, page playwright.Page, fullName, password string) {
	t.Helper()
	a.login(t, page, fullName, password, "/student/dashboard")
}

// registerStudent fills out the registration form and waits for the login redirect.
func (a *testApp) registerStudent(t *testing.T, page playwright.Page, fullName, password, room string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/register"); err != nil {
		t.Fatalf("failed to navigate to register: %v", err)
	}
	if err := page.Locator("input[name=full_name]").Fill(fullName); err != nil {
		t.Fatalf("failed to fill full name: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("input[name=room_number]").Fill(room); err != nil {
		t.Fatalf("failed to fill room number: %v", err)
	}
	if _, err := page.Locator("select[name=gender]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{"F"},
	}); err != nil {
		t.Fatalf("failed to select gender: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click register: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("registration did not redirect to login: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
