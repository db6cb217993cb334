package orchestrators

import (
	"context"
	"errors"
	"testing"

	"laundrydesk/internal/domain/student"
)

type mockStudentLoginStore struct {
	student student.Student
	err     error
}

func (m *mockStudentLoginStore) GetByFullName(ctx context.Context, fullName string) (student.Student, error) {
	if m.err != nil {
		return student.Student{}, m.err
	}
	if m.student.FullName != fullName {
		return student.Student{}, student.ErrNotFound
	}
	return m.student, nil
}

func registeredStudent(t *testing.T, password string) student.Student {
	t.Helper()
	s := student.Student{ID: 7, FullName: "Alice Auckland", RoomNumber: "101", Gender: "F"}
	if err := s.SetPassword(password); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	return s
}

func TestExecuteLogin_Admin(t *testing.T) {
	admin, err := NewEnvAdminVerifier("admin", "admin123")
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}
	deps := LoginDeps{StudentStore: &mockStudentLoginStore{}, Admin: admin}

	result, err := ExecuteLogin(context.Background(), LoginInput{FullName: "admin", Password: "admin123"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != RoleAdmin {
		t.Errorf("expected admin role, got %q", result.Role)
	}
	if result.StudentID != 0 {
		t.Errorf("admin sessions carry no student id, got %d", result.StudentID)
	}
}

func TestExecuteLogin_Student(t *testing.T) {
	s := registeredStudent(t, "sekrit-pass")
	deps := LoginDeps{StudentStore: &mockStudentLoginStore{student: s}}

	result, err := ExecuteLogin(context.Background(), LoginInput{FullName: "Alice Auckland", Password: "sekrit-pass"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != RoleStudent || result.StudentID != 7 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestExecuteLogin_WrongPassword(t *testing.T) {
	s := registeredStudent(t, "sekrit-pass")
	deps := LoginDeps{StudentStore: &mockStudentLoginStore{student: s}}

	_, err := ExecuteLogin(context.Background(), LoginInput{FullName: "Alice Auckland", Password: "guess"}, deps)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestExecuteLogin_UnknownName(t *testing.T) {
	deps := LoginDeps{StudentStore: &mockStudentLoginStore{err: student.ErrNotFound}}

	_, err := ExecuteLogin(context.Background(), LoginInput{FullName: "Nobody", Password: "whatever1"}, deps)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestExecuteLogin_EmptyFields(t *testing.T) {
	deps := LoginDeps{StudentStore: &mockStudentLoginStore{}}

	for _, input := range []LoginInput{
		{FullName: "", Password: "x"},
		{FullName: "x", Password: ""},
	} {
		if _, err := ExecuteLogin(context.Background(), input, deps); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for %+v, got %v", input, err)
		}
	}
}

func TestExecuteLogin_AdminNameWithStudentPassword(t *testing.T) {
	admin, err := NewEnvAdminVerifier("admin", "admin123")
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}
	deps := LoginDeps{StudentStore: &mockStudentLoginStore{}, Admin: admin}

	if _, err := ExecuteLogin(context.Background(), LoginInput{FullName: "admin", Password: "wrong"}, deps); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestEnvAdminVerifier_RequiresBothParts(t *testing.T) {
	v, err := NewEnvAdminVerifier("admin", "admin123")
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}
	if v.Verify("other", "admin123") {
		t.Error("wrong name must not verify")
	}
	if v.Verify("admin", "other") {
		t.Error("wrong password must not verify")
	}
	if !v.Verify("admin", "admin123") {
		t.Error("matching pair must verify")
	}
}

func TestNewEnvAdminVerifier_EmptyConfig(t *testing.T) {
	if _, err := NewEnvAdminVerifier("", "pw"); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := NewEnvAdminVerifier("admin", ""); err == nil {
		t.Error("expected error for empty password")
	}
}
