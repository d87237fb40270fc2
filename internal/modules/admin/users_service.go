package admin

import (
	"context"
	"errors"
	"strings"

	"floorcare/internal/domain"
	"floorcare/internal/pkg/apperror"
	"floorcare/internal/pkg/validator"
	"floorcare/internal/repository"

	"gorm.io/gorm"
)

// UsersService is the admin view over the user store: list, inspect,
// patch and delete any account.
type UsersService struct {
	users UserRepositoryInterface
}

func NewUsersService(users UserRepositoryInterface) *UsersService {
	return &UsersService{users: users}
}

func (s *UsersService) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		sanitize(&users[i])
	}
	return users, nil
}

func (s *UsersService) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("User not found")
		}
		return nil, err
	}
	sanitize(user)
	return user, nil
}

// UpdateUserByID applies a sparse patch of profile fields; anything
// absent from the patch is left untouched.
func (s *UsersService) UpdateUserByID(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	if msg := validator.First(req); msg != "" {
		return nil, apperror.BadRequestf(msg)
	}

	fields := map[string]any{}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, apperror.BadRequestf("Email must not be empty")
		}
		fields["email"] = email
	}
	if req.Mobile != nil {
		fields["mobile"] = strings.TrimSpace(*req.Mobile)
	}
	if req.Gender != nil {
		if !domain.ValidGender(*req.Gender) {
			return nil, apperror.BadRequestf("Gender must be male, female or empty")
		}
		fields["gender"] = *req.Gender
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return nil, apperror.NotFoundf("User not found")
			case errors.Is(err, repository.ErrDuplicateEmail):
				return nil, apperror.Conflictf("Email already taken")
			}
			return nil, err
		}
	}

	return s.FindUserByID(ctx, id)
}

func (s *UsersService) DeleteUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("User not found")
		}
		return nil, err
	}
	return user, nil
}

func sanitize(u *domain.User) {
	u.PasswordHash = ""
	u.ResetOtpHash = nil
	u.ResetOtpExpires = nil
	u.ResetOtpLastSentAt = nil
}
