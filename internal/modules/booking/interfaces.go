package booking

import (
	"context"

	"floorcare/internal/domain"
)

type BookingRepositoryInterface interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCreator(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, error)
	CountByCreator(ctx context.Context, userID int64, status string) (int64, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// UserReader resolves the caller's role for authorization checks.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
