package auth

import (
	"time"

	"floorcare/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty"` // alias, wins over mobile
	Gender       *string `json:"gender,omitempty"`
	Address      *string `json:"address,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UserResponse is the sanitized profile shape returned everywhere a
// user record leaves the API. passwordHash and OTP state never appear.
type UserResponse struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AvatarURL    *string   `json:"avatarUrl"`
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Mobile       *string   `json:"mobile"`
	MobileNumber *string   `json:"mobileNumber"`
	Gender       *string   `json:"gender"`
	Address      *string   `json:"address"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		AvatarURL:    nullable(u.AvatarURL),
		FirstName:    nullable(u.FirstName),
		LastName:     nullable(u.LastName),
		Mobile:       nullable(u.Mobile),
		MobileNumber: nullable(u.Mobile),
		Gender:       nullable(string(u.Gender)),
		Address:      nullable(u.Address),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
