package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"floorcare/internal/domain"
	"floorcare/internal/pkg/apperror"
	"floorcare/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxOtpAttempts    = 5
	minPasswordLength = 8
)

const forgotPasswordMessage = "If that email is registered, an OTP has been sent"

// Service contains all business logic for authentication and the
// password-reset OTP flow.
type Service struct {
	users          UserRepositoryInterface
	jwt            jwtService
	mailer         Mailer
	otpTTL         time.Duration
	resendCooldown time.Duration
}

func NewService(users UserRepositoryInterface, jwt jwtService, mailer Mailer, otpTTL, resendCooldown time.Duration) *Service {
	return &Service{
		users:          users,
		jwt:            jwt,
		mailer:         mailer,
		otpTTL:         otpTTL,
		resendCooldown: resendCooldown,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	role := domain.RoleUser
	if req.Role != "" {
		if req.Role != string(domain.RoleUser) && req.Role != string(domain.RoleAdmin) {
			return nil, "", apperror.BadRequestf("Invalid role")
		}
		role = domain.UserRole(req.Role)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", apperror.Conflictf("Email already registered")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration can still win the race
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", apperror.Conflictf("Email already registered")
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	// identical message for unknown email and wrong password, so the
	// response never signals whether an account exists
	invalid := apperror.Unauthorizedf("Invalid email or password")

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", invalid
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", invalid
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorizedf("User not found")
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies a sparse patch of optional profile fields.
// Email and role are not reachable through this path.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	fields := map[string]any{}
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
			return nil, apperror.BadRequestf("First name must be between 2 and 50 characters")
		}
		fields["first_name"] = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
			return nil, apperror.BadRequestf("Last name must be between 2 and 50 characters")
		}
		fields["last_name"] = name
	}
	if req.MobileNumber != nil {
		fields["mobile"] = strings.TrimSpace(*req.MobileNumber)
	} else if req.Mobile != nil {
		fields["mobile"] = strings.TrimSpace(*req.Mobile)
	}
	if req.Gender != nil {
		if !domain.ValidGender(*req.Gender) {
			return nil, apperror.BadRequestf("Gender must be male, female or empty")
		}
		fields["gender"] = *req.Gender
	}
	if req.Address != nil {
		addr := strings.TrimSpace(*req.Address)
		if utf8.RuneCountInString(addr) > 200 {
			return nil, apperror.BadRequestf("Address must be at most 200 characters")
		}
		fields["address"] = addr
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Unauthorizedf("User not found")
			}
			return nil, err
		}
	}

	return s.GetCurrentUser(ctx, userID)
}

// SetAvatar stores the public URL of a freshly uploaded avatar file.
func (s *Service) SetAvatar(ctx context.Context, userID int64, url string) (*domain.User, error) {
	if err := s.users.UpdateFields(ctx, userID, map[string]any{"avatar_url": url}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorizedf("User not found")
		}
		return nil, err
	}
	return s.GetCurrentUser(ctx, userID)
}

// ClearAvatar removes the avatar reference and reports the previous URL
// so the caller can delete the stored file best-effort.
func (s *Service) ClearAvatar(ctx context.Context, userID int64) (string, *domain.User, error) {
	user, err := s.GetCurrentUser(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	oldURL := user.AvatarURL
	if oldURL != "" {
		if err := s.users.UpdateFields(ctx, userID, map[string]any{"avatar_url": nil}); err != nil {
			return "", nil, err
		}
		user.AvatarURL = ""
	}
	return oldURL, user, nil
}

// ForgotPassword starts the OTP flow. The reply is identical whether or
// not the email is registered.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return forgotPasswordMessage, nil
		}
		return "", err
	}

	now := time.Now()
	if user.ResetOtpLastSentAt != nil && now.Sub(*user.ResetOtpLastSentAt) < s.resendCooldown {
		return "", apperror.TooManyRequestsf("Please wait before requesting another OTP")
	}

	otp, err := generateOtp()
	if err != nil {
		return "", err
	}
	otpHash, err := hashPassword(otp)
	if err != nil {
		return "", err
	}

	// deliver the plaintext before the stored hash is relied upon
	if err := s.mailer.SendResetOtp(user.Email, otp); err != nil {
		return "", err
	}

	if err := s.users.UpdateFields(ctx, user.ID, map[string]any{
		"reset_otp_hash":         otpHash,
		"reset_otp_expires":      now.Add(s.otpTTL),
		"reset_otp_verified":     false,
		"reset_otp_attempts":     0,
		"reset_otp_last_sent_at": now,
	}); err != nil {
		return "", err
	}

	return forgotPasswordMessage, nil
}

func (s *Service) VerifyResetOtp(ctx context.Context, email, otp string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.BadRequestf("No password reset in progress")
		}
		return err
	}

	if user.ResetOtpHash == nil {
		return apperror.BadRequestf("No password reset in progress")
	}
	if user.ResetOtpAttempts >= maxOtpAttempts {
		return apperror.TooManyRequestsf("Too many attempts, please request a new OTP")
	}
	if user.ResetOtpExpires == nil || time.Now().After(*user.ResetOtpExpires) {
		return apperror.BadRequestf("OTP has expired")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.ResetOtpHash), []byte(otp)); err != nil {
		if err := s.users.UpdateFields(ctx, user.ID, map[string]any{
			"reset_otp_attempts": user.ResetOtpAttempts + 1,
		}); err != nil {
			return err
		}
		return apperror.BadRequestf("Invalid OTP")
	}

	// keep the hash until the password is actually reset
	return s.users.UpdateFields(ctx, user.ID, map[string]any{
		"reset_otp_verified": true,
	})
}

func (s *Service) ResetPassword(ctx context.Context, email, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperror.BadRequestf("Passwords do not match")
	}
	if len(newPassword) < minPasswordLength {
		return apperror.BadRequestf("Password must be at least 8 characters")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.BadRequestf("No password reset in progress")
		}
		return err
	}

	if user.ResetOtpHash == nil {
		return apperror.BadRequestf("No password reset in progress")
	}
	if !user.ResetOtpVerified {
		return apperror.BadRequestf("OTP not verified")
	}
	if user.ResetOtpExpires == nil || time.Now().After(*user.ResetOtpExpires) {
		return apperror.BadRequestf("OTP has expired")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	// back to NoResetInProgress: every OTP field cleared
	return s.users.UpdateFields(ctx, user.ID, map[string]any{
		"password_hash":          hash,
		"reset_otp_hash":         nil,
		"reset_otp_expires":      nil,
		"reset_otp_verified":     false,
		"reset_otp_attempts":     0,
		"reset_otp_last_sent_at": nil,
	})
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// generateOtp draws a 6-digit code uniformly from [100000, 999999].
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
