package student

import (
	"context"

	domain "laundrydesk/internal/domain/student"
)

// Store persists Student state.
type Store interface {
	Create(ctx context.Context, value domain.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Student, error)
	GetByFullName(ctx context.Context, fullName string) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
}
