package admin

import (
	"context"

	"floorcare/internal/domain"
)

// UserRepositoryInterface lists the user-store methods admin management uses.
type UserRepositoryInterface interface {
	ListAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type jwtService interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
