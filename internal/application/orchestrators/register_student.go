package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"laundrydesk/internal/domain/student"
)

// StudentStoreForRegister defines the store interface needed by RegisterStudent.
type StudentStoreForRegister interface {
	Create(ctx context.Context, s student.Student) (int64, error)
}

// RegisterStudentInput carries input for the registration orchestrator.
type RegisterStudentInput struct {
	FullName   string
	Password   string
	RoomNumber string
	Gender     string
	Email      string // optional
}

// RegisterStudentDeps holds dependencies for RegisterStudent.
type RegisterStudentDeps struct {
	StudentStore StudentStoreForRegister
	Now          func() time.Time
}

// ExecuteRegisterStudent validates and persists a new student.
// PRE: Form fields are provided
// POST: Student row exists with a bcrypt password hash, or a domain error is
// returned (ErrDuplicateName when the full name is taken)
func ExecuteRegisterStudent(ctx context.Context, input RegisterStudentInput, deps RegisterStudentDeps) (student.Student, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	s := student.Student{
		FullName:   input.FullName,
		RoomNumber: input.RoomNumber,
		Gender:     input.Gender,
		Email:      input.Email,
		CreatedAt:  now,
	}
	if err := s.Validate(); err != nil {
		return student.Student{}, err
	}
	if err := s.SetPassword(input.Password); err != nil {
		return student.Student{}, err
	}

	id, err := deps.StudentStore.Create(ctx, s)
	if err != nil {
		slog.Info("auth_event", "event", "register_failed", "full_name", input.FullName, "error", err)
		return student.Student{}, err
	}
	s.ID = id

	slog.Info("auth_event", "event", "register_success", "student_id", id, "full_name", s.FullName)
	return s, nil
}
