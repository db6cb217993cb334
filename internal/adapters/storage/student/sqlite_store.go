package student

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"laundrydesk/internal/adapters/storage"
	domain "laundrydesk/internal/domain/student"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const studentColumns = `id, full_name, password_hash, room_number, gender, email, created_at`

// Create inserts a new student row.
// PRE: entity has been validated and the password hash is set
// POST: Returns the new row id; ErrDuplicateName when full_name is taken
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Student) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO students (full_name, password_hash, room_number, gender, email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entity.FullName, entity.PasswordHash, entity.RoomNumber, entity.Gender,
		entity.Email, entity.CreatedAt.Format(timeLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, domain.ErrDuplicateName
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves a student by ID.
// PRE: id is positive
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id)
	return scanStudent(row)
}

// GetByFullName retrieves a student by their unique full name.
// PRE: fullName is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByFullName(ctx context.Context, fullName string) (domain.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE full_name = ?`, fullName)
	return scanStudent(row)
}

// List returns all students ordered by full name.
// POST: Returns every student row
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var st domain.Student
		var createdAt string
		if err := rows.Scan(&st.ID, &st.FullName, &st.PasswordHash, &st.RoomNumber,
			&st.Gender, &st.Email, &createdAt); err != nil {
			return nil, err
		}
		st.CreatedAt = parseTime(createdAt, st.ID)
		students = append(students, st)
	}
	return students, rows.Err()
}

// scanStudent scans a single row into a Student.
func scanStudent(row *sql.Row) (domain.Student, error) {
	var st domain.Student
	var createdAt string
	err := row.Scan(&st.ID, &st.FullName, &st.PasswordHash, &st.RoomNumber,
		&st.Gender, &st.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Student{}, err
	}
	st.CreatedAt = parseTime(createdAt, st.ID)
	return st, nil
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw string, studentID int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("student: failed to parse time", "field", "created_at", "student_id", studentID, "raw", raw, "error", err)
	}
	return t
}
