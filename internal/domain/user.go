package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnset  Gender = ""
)

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	Mobile       string   `json:"mobile,omitempty"`
	Gender       Gender   `json:"gender,omitempty"`
	Address      string   `json:"address,omitempty"`
	AvatarURL    string   `json:"avatarUrl,omitempty"`

	// Password-reset OTP state. Hash and timestamps are nil while no
	// reset is in progress.
	ResetOtpHash       *string    `json:"-"`
	ResetOtpExpires    *time.Time `json:"-"`
	ResetOtpVerified   bool       `json:"-"`
	ResetOtpAttempts   int        `json:"-"`
	ResetOtpLastSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidGender(g string) bool {
	switch Gender(g) {
	case GenderMale, GenderFemale, GenderUnset:
		return true
	}
	return false
}
