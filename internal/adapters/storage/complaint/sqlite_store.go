package complaint

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"laundrydesk/internal/adapters/storage"
	domain "laundrydesk/internal/domain/complaint"
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

const complaintColumns = `id, student_id, laundry_id, description, status, date_submitted, admin_response, date_resolved`

// Create inserts a new pending complaint.
// PRE: entity has been validated
// POST: Returns the new row id
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Complaint) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO complaints (student_id, laundry_id, description, status, date_submitted)
		 VALUES (?, ?, ?, ?, ?)`,
		entity.StudentID, entity.LaundryID, entity.Description,
		domain.StatusPending, entity.DateSubmitted.Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves a complaint by ID.
// PRE: id is positive
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Complaint, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = ?`, id)
	return scanComplaint(row)
}

// ListByStudent returns a student's complaints, newest first.
// PRE: studentID is positive
// POST: Returns complaints ordered by date_submitted DESC
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID int64) ([]domain.Complaint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints
		 WHERE student_id = ? ORDER BY date_submitted DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// List returns every complaint, newest first.
// POST: Returns complaints ordered by date_submitted DESC
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Complaint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints ORDER BY date_submitted DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// Resolve marks the complaint resolved and inserts the notification for its
// student in the same transaction. Resolving again overwrites the response
// and resolution time and appends another notification.
// PRE: response is non-empty
// POST: Resolution and notification commit together or not at all;
// ErrNotFound when no complaint has the given id
func (s *SQLiteStore) Resolve(ctx context.Context, id int64, response string, now time.Time, notifyMessage string) (domain.Complaint, error) {
	var c domain.Complaint
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+complaintColumns+` FROM complaints WHERE id = ?`, id)
		var err error
		c, err = scanComplaint(row)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE complaints SET status = ?, admin_response = ?, date_resolved = ? WHERE id = ?`,
			domain.StatusResolved, response, now.Format(timeLayout), id); err != nil {
			return err
		}
		c.Status = domain.StatusResolved
		c.AdminResponse = response
		c.DateResolved = now

		if notifyMessage != "" {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO notifications (student_id, message, date_created) VALUES (?, ?, ?)`,
				c.StudentID, notifyMessage, now.Format(timeLayout)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Complaint{}, err
	}
	return c, nil
}

// scannedRow holds the raw scanned values from a complaint row before conversion.
type scannedRow struct {
	dateSubmitted string
	adminResponse sql.NullString
	dateResolved  sql.NullString
}

// scanComplaint scans a single row into a Complaint.
func scanComplaint(row *sql.Row) (domain.Complaint, error) {
	var c domain.Complaint
	var s scannedRow
	err := row.Scan(&c.ID, &c.StudentID, &c.LaundryID, &c.Description, &c.Status,
		&s.dateSubmitted, &s.adminResponse, &s.dateResolved)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Complaint{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Complaint{}, err
	}
	applyScanned(&c, &s)
	return c, nil
}

// scanComplaints scans multiple rows into a slice of Complaints.
func scanComplaints(rows *sql.Rows) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	for rows.Next() {
		var c domain.Complaint
		var s scannedRow
		if err := rows.Scan(&c.ID, &c.StudentID, &c.LaundryID, &c.Description, &c.Status,
			&s.dateSubmitted, &s.adminResponse, &s.dateResolved); err != nil {
			return nil, err
		}
		applyScanned(&c, &s)
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

// applyScanned converts raw scanned values into the Complaint domain fields.
func applyScanned(c *domain.Complaint, s *scannedRow) {
	c.DateSubmitted = parseTime(s.dateSubmitted, "date_submitted", c.ID)
	if s.adminResponse.Valid {
		c.AdminResponse = s.adminResponse.String
	}
	if s.dateResolved.Valid {
		c.DateResolved = parseTime(s.dateResolved.String, "date_resolved", c.ID)
	}
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw, field string, complaintID int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("complaint: failed to parse time", "field", field, "complaint_id", complaintID, "raw", raw, "error", err)
	}
	return t
}
