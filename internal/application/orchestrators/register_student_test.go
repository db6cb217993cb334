package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundrydesk/internal/domain/student"
)

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type mockStudentCreateStore struct {
	created *student.Student
	err     error
	nextID  int64
}

func (m *mockStudentCreateStore) Create(ctx context.Context, s student.Student) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.created = &s
	return m.nextID, nil
}

func validRegisterInput() RegisterStudentInput {
	return RegisterStudentInput{
		FullName:   "Alice Auckland",
		Password:   "sekrit-pass",
		RoomNumber: "101",
		Gender:     "F",
		Email:      "alice@example.edu",
	}
}

func TestExecuteRegisterStudent(t *testing.T) {
	store := &mockStudentCreateStore{nextID: 42}
	deps := RegisterStudentDeps{StudentStore: store, Now: func() time.Time { return fixedTime }}

	s, err := ExecuteRegisterStudent(context.Background(), validRegisterInput(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != 42 {
		t.Errorf("expected id from store, got %d", s.ID)
	}
	if store.created == nil {
		t.Fatal("expected student to be persisted")
	}
	if store.created.PasswordHash == "" || store.created.PasswordHash == "sekrit-pass" {
		t.Error("expected password to be hashed before persistence")
	}
	if !store.created.CreatedAt.Equal(fixedTime) {
		t.Errorf("expected CreatedAt=%v, got %v", fixedTime, store.created.CreatedAt)
	}
}

func TestExecuteRegisterStudent_ValidationFailure(t *testing.T) {
	store := &mockStudentCreateStore{nextID: 1}
	deps := RegisterStudentDeps{StudentStore: store}

	input := validRegisterInput()
	input.FullName = "  "
	if _, err := ExecuteRegisterStudent(context.Background(), input, deps); !errors.Is(err, student.ErrEmptyFullName) {
		t.Errorf("expected ErrEmptyFullName, got %v", err)
	}
	if store.created != nil {
		t.Error("invalid input must not reach the store")
	}
}

func TestExecuteRegisterStudent_ShortPassword(t *testing.T) {
	deps := RegisterStudentDeps{StudentStore: &mockStudentCreateStore{}}

	input := validRegisterInput()
	input.Password = "short"
	if _, err := ExecuteRegisterStudent(context.Background(), input, deps); !errors.Is(err, student.ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestExecuteRegisterStudent_DuplicateName(t *testing.T) {
	deps := RegisterStudentDeps{StudentStore: &mockStudentCreateStore{err: student.ErrDuplicateName}}

	if _, err := ExecuteRegisterStudent(context.Background(), validRegisterInput(), deps); !errors.Is(err, student.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}
