package notification

import (
	"context"
	"log/slog"
	"time"

	"laundrydesk/internal/adapters/storage"
	domain "laundrydesk/internal/domain/notification"
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

// Create inserts a new unread notification.
// PRE: entity has a student_id and message
// POST: Returns the new row id
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Notification) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (student_id, message, date_created) VALUES (?, ?, ?)`,
		entity.StudentID, entity.Message, entity.DateCreated.Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListUnread returns a student's unread notifications, newest first.
// PRE: studentID is positive
// POST: Returns unread notifications ordered by date_created DESC
func (s *SQLiteStore) ListUnread(ctx context.Context, studentID int64) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, message, date_created, is_read FROM notifications
		 WHERE student_id = ? AND is_read = 0 ORDER BY date_created DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var created string
		var read int
		if err := rows.Scan(&n.ID, &n.StudentID, &n.Message, &created, &read); err != nil {
			return nil, err
		}
		n.DateCreated = parseTime(created, n.ID)
		n.IsRead = read != 0
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags a notification as read, but only when it belongs to the
// given student. Updating someone else's notification reports ErrNotFound.
// PRE: id and studentID are positive
// POST: is_read is set, or ErrNotFound with no row changed
func (s *SQLiteStore) MarkRead(ctx context.Context, id, studentID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND student_id = ?`, id, studentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw string, notificationID int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("notification: failed to parse time", "field", "date_created", "notification_id", notificationID, "raw", raw, "error", err)
	}
	return t
}
