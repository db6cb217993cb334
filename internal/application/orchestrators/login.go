package orchestrators

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"laundrydesk/internal/domain/student"
)

// Role constants for session creation.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// StudentStoreForLogin defines the store interface needed by Login.
type StudentStoreForLogin interface {
	GetByFullName(ctx context.Context, fullName string) (student.Student, error)
}

// AdminVerifier checks a credential pair against the configured administrator
// identity. Implementations must not leak which half of the pair failed.
type AdminVerifier interface {
	Verify(fullName, password string) bool
}

// EnvAdminVerifier verifies against an admin identity configured at startup.
// The password is bcrypt-hashed at construction so the plaintext is not kept
// in process memory.
type EnvAdminVerifier struct {
	name string
	hash []byte
}

// NewEnvAdminVerifier creates a verifier for the given admin credentials.
// PRE: name and password are non-empty
// POST: Returns a verifier holding only the bcrypt hash
func NewEnvAdminVerifier(name, password string) (*EnvAdminVerifier, error) {
	if name == "" || password == "" {
		return nil, errors.New("admin name and password must be configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return &EnvAdminVerifier{name: name, hash: hash}, nil
}

// Verify reports whether the credential pair matches the configured admin.
// INVARIANT: Verifier fields are not mutated
func (v *EnvAdminVerifier) Verify(fullName, password string) bool {
	nameOK := subtle.ConstantTimeCompare([]byte(v.name), []byte(fullName)) == 1
	passOK := bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
	return nameOK && passOK
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	FullName string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Role      string
	StudentID int64 // zero for admin sessions
	FullName  string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	StudentStore StudentStoreForLogin
	Admin        AdminVerifier
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// ExecuteLogin validates credentials and returns identity info for session creation.
// PRE: Full name and password provided
// POST: Returns an admin or student identity on success; ErrInvalidCredentials
// otherwise with no hint about which field was wrong
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.FullName == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	if deps.Admin != nil && deps.Admin.Verify(input.FullName, input.Password) {
		slog.Info("auth_event", "event", "login_success", "role", RoleAdmin)
		return LoginResult{Role: RoleAdmin, FullName: input.FullName}, nil
	}

	s, err := deps.StudentStore.GetByFullName(ctx, input.FullName)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "full_name", input.FullName, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "full_name", input.FullName, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "role", RoleStudent, "student_id", s.ID)
	return LoginResult{Role: RoleStudent, StudentID: s.ID, FullName: s.FullName}, nil
}
