package laundry

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"laundrydesk/internal/adapters/storage"
	domain "laundrydesk/internal/domain/laundry"
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

const bagColumns = `id, student_id, status, date_submitted, notification_sent`

// GetByID retrieves a bag by ID.
// PRE: id is positive
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Bag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bagColumns+` FROM laundry WHERE id = ?`, id)
	return scanBag(row)
}

// ListByStudent returns a student's bags, newest first.
// PRE: studentID is positive
// POST: Returns all of the student's bags ordered by date_submitted DESC
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID int64) ([]domain.Bag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bagColumns+` FROM laundry
		 WHERE student_id = ? ORDER BY date_submitted DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBags(rows)
}

// List returns every bag, newest first.
// POST: Returns all bags ordered by date_submitted DESC
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Bag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bagColumns+` FROM laundry ORDER BY date_submitted DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBags(rows)
}

// CountActive counts a student's bags in any status other than collected or complete.
// PRE: studentID is positive
// POST: Returns the active-bag count
func (s *SQLiteStore) CountActive(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM laundry
		 WHERE student_id = ? AND status NOT IN (?, ?)`,
		studentID, domain.StatusCollected, domain.StatusComplete).Scan(&count)
	return count, err
}

// Submit inserts a pending bag for the student unless the active-bag limit is
// reached. The count and the insert run in one transaction so two concurrent
// submissions cannot both pass the check.
// PRE: studentID references an existing student
// POST: Returns the new bag, or ErrBagLimitReached with no row inserted
func (s *SQLiteStore) Submit(ctx context.Context, studentID int64, now time.Time) (domain.Bag, error) {
	var bag domain.Bag
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var active int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM laundry
			 WHERE student_id = ? AND status NOT IN (?, ?)`,
			studentID, domain.StatusCollected, domain.StatusComplete).Scan(&active); err != nil {
			return err
		}
		if active >= domain.MaxActiveBags {
			return domain.ErrBagLimitReached
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO laundry (student_id, status, date_submitted) VALUES (?, ?, ?)`,
			studentID, domain.StatusPending, now.Format(timeLayout))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		bag = domain.Bag{ID: id, StudentID: studentID, Status: domain.StatusPending, DateSubmitted: now}
		return nil
	})
	if err != nil {
		return domain.Bag{}, err
	}
	return bag, nil
}

// UpdateStatus sets the bag's status and, when notifyMessage is non-empty,
// inserts a notification for the bag's owner in the same transaction.
// PRE: status is non-empty
// POST: Status update and notification commit together or not at all;
// ErrNotFound when no bag has the given id
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id int64, status string, now time.Time, notifyMessage string) (domain.Bag, error) {
	var bag domain.Bag
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+bagColumns+` FROM laundry WHERE id = ?`, id)
		var err error
		bag, err = scanBag(row)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE laundry SET status = ? WHERE id = ?`, status, id); err != nil {
			return err
		}
		bag.Status = status

		if notifyMessage != "" {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO notifications (student_id, message, date_created) VALUES (?, ?, ?)`,
				bag.StudentID, notifyMessage, now.Format(timeLayout)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Bag{}, err
	}
	return bag, nil
}

// MarkNotificationSent records that a laundry-ready email was delivered for the bag.
// PRE: id references an existing bag
// POST: notification_sent is set
func (s *SQLiteStore) MarkNotificationSent(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE laundry SET notification_sent = 1 WHERE id = ?`, id)
	return err
}

// scanBag scans a single row into a Bag.
func scanBag(row *sql.Row) (domain.Bag, error) {
	var b domain.Bag
	var submitted string
	var sent int
	err := row.Scan(&b.ID, &b.StudentID, &b.Status, &submitted, &sent)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Bag{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Bag{}, err
	}
	b.DateSubmitted = parseTime(submitted, b.ID)
	b.NotificationSent = sent != 0
	return b, nil
}

// scanBags scans multiple rows into a slice of Bags.
func scanBags(rows *sql.Rows) ([]domain.Bag, error) {
	var bags []domain.Bag
	for rows.Next() {
		var b domain.Bag
		var submitted string
		var sent int
		if err := rows.Scan(&b.ID, &b.StudentID, &b.Status, &submitted, &sent); err != nil {
			return nil, err
		}
		b.DateSubmitted = parseTime(submitted, b.ID)
		b.NotificationSent = sent != 0
		bags = append(bags, b)
	}
	return bags, rows.Err()
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw string, bagID int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("laundry: failed to parse time", "field", "date_submitted", "laundry_id", bagID, "raw", raw, "error", err)
	}
	return t
}
