package orchestrators

import (
	"context"
	"errors"
	"testing"

	"laundrydesk/internal/domain/notification"
)

type mockNotificationMarkStore struct {
	err   error
	gotID int64
	gotSt int64
}

func (m *mockNotificationMarkStore) MarkRead(ctx context.Context, id, studentID int64) error {
	m.gotID, m.gotSt = id, studentID
	return m.err
}

func TestExecuteMarkNotificationRead(t *testing.T) {
	store := &mockNotificationMarkStore{}
	deps := MarkNotificationReadDeps{NotificationStore: store}

	if err := ExecuteMarkNotificationRead(context.Background(), MarkNotificationReadInput{
		NotificationID: 3, StudentID: 7,
	}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotID != 3 || store.gotSt != 7 {
		t.Errorf("unexpected store call: id=%d student=%d", store.gotID, store.gotSt)
	}
}

func TestExecuteMarkNotificationRead_NotOwned(t *testing.T) {
	deps := MarkNotificationReadDeps{NotificationStore: &mockNotificationMarkStore{err: notification.ErrNotFound}}

	err := ExecuteMarkNotificationRead(context.Background(), MarkNotificationReadInput{
		NotificationID: 3, StudentID: 7,
	}, deps)
	if !errors.Is(err, notification.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
