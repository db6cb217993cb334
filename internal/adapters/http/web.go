package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"

	"laundrydesk/internal/adapters/email"
	"laundrydesk/internal/adapters/http/middleware"
	complaintStore "laundrydesk/internal/adapters/storage/complaint"
	laundryStore "laundrydesk/internal/adapters/storage/laundry"
	notificationStore "laundrydesk/internal/adapters/storage/notification"
	studentStore "laundrydesk/internal/adapters/storage/student"
	"laundrydesk/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	StudentStore      studentStore.Store
	LaundryStore      laundryStore.Store
	ComplaintStore    complaintStore.Store
	NotificationStore notificationStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global admin credential verifier (set by NewMux)
var adminVerifier orchestrators.AdminVerifier

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// loadCSRFKey reads the CSRF secret from LAUNDRYDESK_CSRF_KEY (hex-encoded,
// 32 bytes). In production the key MUST be set; in development a random key
// is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("LAUNDRYDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("LAUNDRYDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("LAUNDRYDESK_ENV") == "production" {
		log.Fatal("LAUNDRYDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set LAUNDRYDESK_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, admin orchestrators.AdminVerifier) http.Handler {
	stores = s
	adminVerifier = admin
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("LAUNDRYDESK_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
	)
}
