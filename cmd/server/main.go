package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "laundrydesk/internal/adapters/email"
	web "laundrydesk/internal/adapters/http"
	"laundrydesk/internal/adapters/storage"
	complaintStore "laundrydesk/internal/adapters/storage/complaint"
	laundryStore "laundrydesk/internal/adapters/storage/laundry"
	notificationStore "laundrydesk/internal/adapters/storage/notification"
	studentStore "laundrydesk/internal/adapters/storage/student"
	"laundrydesk/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys, and a 20s busy timeout for concurrent writers
	dbPath := envOrDefault("LAUNDRYDESK_DB", "laundrydesk.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(20000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Schema creation is idempotent; a failure here aborts startup
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	stores := &web.Stores{
		StudentStore:      studentStore.NewSQLiteStore(db),
		LaundryStore:      laundryStore.NewSQLiteStore(db),
		ComplaintStore:    complaintStore.NewSQLiteStore(db),
		NotificationStore: notificationStore.NewSQLiteStore(db),
	}

	// Admin identity. The defaults match the legacy deployment and are
	// refused in production.
	adminName := envOrDefault("LAUNDRYDESK_ADMIN_NAME", "admin")
	adminPassword := os.Getenv("LAUNDRYDESK_ADMIN_PASSWORD")
	if adminPassword == "" {
		if os.Getenv("LAUNDRYDESK_ENV") == "production" {
			log.Fatal("LAUNDRYDESK_ADMIN_PASSWORD is required in production")
		}
		adminPassword = "admin123"
		log.Println("WARNING: using default admin credentials. Set LAUNDRYDESK_ADMIN_PASSWORD for production.")
	}
	admin, err := orchestrators.NewEnvAdminVerifier(adminName, adminPassword)
	if err != nil {
		log.Fatalf("failed to configure admin identity: %v", err)
	}

	// Configure email sender for laundry-ready alerts
	resendKey := os.Getenv("LAUNDRYDESK_RESEND_KEY")
	emailFrom := envOrDefault("LAUNDRYDESK_EMAIL_FROM", "Laundrydesk <noreply@laundrydesk.example.edu>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		log.Println("Email sender configured (noop). Set LAUNDRYDESK_RESEND_KEY for real delivery.")
	}

	mux := web.NewMux("static", stores, admin)

	addr := envOrDefault("LAUNDRYDESK_ADDR", ":8080")
	log.Printf("Laundrydesk %s starting on %s (env=%s)", version, addr, envOrDefault("LAUNDRYDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
