package student

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxFullNameLength   = 100
	MaxRoomNumberLength = 16
	MaxEmailLength      = 254
)

// Domain errors
var (
	ErrEmptyFullName    = errors.New("full name cannot be empty")
	ErrFullNameTooLong  = errors.New("full name cannot exceed 100 characters")
	ErrEmptyRoomNumber  = errors.New("room number cannot be empty")
	ErrEmptyGender      = errors.New("gender cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrDuplicateName    = errors.New("a student with that name is already registered")
	ErrNotFound         = errors.New("student not found")
)

// Student holds state for a registered student.
type Student struct {
	ID           int64
	FullName     string
	PasswordHash string
	RoomNumber   string
	Gender       string
	Email        string // optional, used for laundry-ready email delivery
	CreatedAt    time.Time
}

// Validate checks if the Student has valid data.
// PRE: Student struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.FullName) == "" {
		return ErrEmptyFullName
	}
	if len(s.FullName) > MaxFullNameLength {
		return ErrFullNameTooLong
	}
	if strings.TrimSpace(s.RoomNumber) == "" {
		return ErrEmptyRoomNumber
	}
	if len(s.RoomNumber) > MaxRoomNumberLength {
		return errors.New("room number cannot exceed 16 characters")
	}
	if strings.TrimSpace(s.Gender) == "" {
		return ErrEmptyGender
	}
	if s.Email != "" {
		if len(s.Email) > MaxEmailLength {
			return errors.New("email cannot exceed 254 characters")
		}
		if !strings.Contains(s.Email, "@") {
			return ErrInvalidEmail
		}
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 8 characters
// POST: PasswordHash is set to bcrypt hash
func (s *Student) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 8 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Student fields are not mutated
func (s *Student) CheckPassword(plaintext string) error {
	if s.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
