package auth

import (
	"context"

	"floorcare/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
}

// Mailer delivers the plaintext OTP to the user. It must be invoked
// before the stored OTP hash is relied upon.
type Mailer interface {
	SendResetOtp(to, otp string) error
}

type jwtService interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
