package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"floorcare/internal/domain"
	"floorcare/internal/pkg/apperror"
)

// Mock user repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1 // simulate DB insert
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

// Mock mailer capturing the last plaintext OTP
type mockMailer struct {
	mock.Mock
	lastOtp string
}

func (m *mockMailer) SendResetOtp(to, otp string) error {
	m.lastOtp = otp
	args := m.Called(to, otp)
	return args.Error(0)
}

func newTestService(users UserRepositoryInterface, jwt jwtService, mailer Mailer) *Service {
	return NewService(users, jwt, mailer, 10*time.Minute, 60*time.Second)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)
	m := new(mockMailer)

	userRepo.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	jwtSvc.On("GenerateToken", int64(1), "test@example.com", "user").Return("fake-jwt-token", nil)

	service := newTestService(userRepo, jwtSvc, m)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Test@Example.com",
		Password: "securepass123",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)

	userRepo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "exists@example.com").Return(true, nil)

	service := newTestService(userRepo, jwtSvc, new(mockMailer))

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email:    "exists@example.com",
		Password: "securepass123",
	})

	assert.True(t, apperror.IsKind(err, apperror.Conflict))
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.User{
		ID:           10,
		Email:        "user@example.com",
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	}

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	jwtSvc.On("GenerateToken", int64(10), "user@example.com", "user").Return("login-token", nil)

	service := newTestService(userRepo, jwtSvc, new(mockMailer))

	user, token, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "login-token", token)
	assert.Equal(t, int64(10), user.ID)
}

func TestService_Login_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.DefaultCost)
	existing := &domain.User{ID: 10, Email: "user@example.com", PasswordHash: string(hashed)}

	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(userRepo, jwtSvc, new(mockMailer))

	_, _, errWrongPassword := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrongpass",
	})
	_, _, errUnknownEmail := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.True(t, apperror.IsKind(errWrongPassword, apperror.Unauthorized))
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestService_UpdateProfile_PartialPatch(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	first := "Sita"
	userRepo.On("UpdateFields", mock.Anything, int64(7), map[string]any{
		"first_name": "Sita",
	}).Return(nil)
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, FirstName: "Sita"}, nil)

	service := newTestService(userRepo, jwtSvc, new(mockMailer))

	user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileRequest{FirstName: &first})

	assert.NoError(t, err)
	assert.Equal(t, "Sita", user.FirstName)
	userRepo.AssertExpectations(t)
}

func TestService_UpdateProfile_InvalidGender(t *testing.T) {
	service := newTestService(new(mockUserRepo), new(mockJWTService), new(mockMailer))

	bad := "other"
	_, err := service.UpdateProfile(context.Background(), 7, UpdateProfileRequest{Gender: &bad})

	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
}

func TestService_UpdateProfile_NameBounds(t *testing.T) {
	service := newTestService(new(mockUserRepo), new(mockJWTService), new(mockMailer))
	ctx := context.Background()

	tooShort := "X"
	_, err := service.UpdateProfile(ctx, 7, UpdateProfileRequest{FirstName: &tooShort})
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))

	tooLong := strings.Repeat("a", 51)
	_, err = service.UpdateProfile(ctx, 7, UpdateProfileRequest{LastName: &tooLong})
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))

	longAddress := strings.Repeat("a", 201)
	_, err = service.UpdateProfile(ctx, 7, UpdateProfileRequest{Address: &longAddress})
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
}

func TestService_UpdateProfile_MultibyteNameCountedInCharacters(t *testing.T) {
	userRepo := new(mockUserRepo)

	// 50 characters, 150 bytes; the limit counts characters
	name := strings.Repeat("श", 50)
	userRepo.On("UpdateFields", mock.Anything, int64(7), map[string]any{
		"first_name": name,
	}).Return(nil)
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, FirstName: name}, nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileRequest{FirstName: &name})

	assert.NoError(t, err)
	assert.Equal(t, name, user.FirstName)
	userRepo.AssertExpectations(t)
}

func TestService_ForgotPassword_UnknownEmailGetsGenericMessage(t *testing.T) {
	userRepo := new(mockUserRepo)
	m := new(mockMailer)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(userRepo, new(mockJWTService), m)

	msg, err := service.ForgotPassword(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	assert.Equal(t, forgotPasswordMessage, msg)
	m.AssertNotCalled(t, "SendResetOtp", mock.Anything, mock.Anything)
}

func TestService_ForgotPassword_SendsOtpAndStoresState(t *testing.T) {
	userRepo := new(mockUserRepo)
	m := new(mockMailer)

	existing := &domain.User{ID: 3, Email: "user@example.com"}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	m.On("SendResetOtp", "user@example.com", mock.MatchedBy(func(otp string) bool {
		return len(otp) == 6
	})).Return(nil)
	userRepo.On("UpdateFields", mock.Anything, int64(3), mock.MatchedBy(func(fields map[string]any) bool {
		_, hasHash := fields["reset_otp_hash"]
		_, hasExpiry := fields["reset_otp_expires"]
		return hasHash && hasExpiry &&
			fields["reset_otp_verified"] == false &&
			fields["reset_otp_attempts"] == 0
	})).Return(nil)

	service := newTestService(userRepo, new(mockJWTService), m)

	msg, err := service.ForgotPassword(context.Background(), "user@example.com")

	assert.NoError(t, err)
	assert.Equal(t, forgotPasswordMessage, msg)
	assert.Len(t, m.lastOtp, 6)
	userRepo.AssertExpectations(t)
	m.AssertExpectations(t)
}

func TestService_ForgotPassword_ResendCooldown(t *testing.T) {
	userRepo := new(mockUserRepo)
	m := new(mockMailer)

	recent := time.Now().Add(-30 * time.Second)
	existing := &domain.User{ID: 3, Email: "user@example.com", ResetOtpLastSentAt: &recent}
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)

	service := newTestService(userRepo, new(mockJWTService), m)

	_, err := service.ForgotPassword(context.Background(), "user@example.com")

	assert.True(t, apperror.IsKind(err, apperror.TooManyRequests))
	m.AssertNotCalled(t, "SendResetOtp", mock.Anything, mock.Anything)
}

func TestService_VerifyResetOtp_NoResetInProgress(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{ID: 3}, nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	err := service.VerifyResetOtp(context.Background(), "user@example.com", "123456")
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
}

func TestService_VerifyResetOtp_TooManyAttempts(t *testing.T) {
	userRepo := new(mockUserRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	hashStr := string(hash)
	expires := time.Now().Add(5 * time.Minute)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		ID:               3,
		ResetOtpHash:     &hashStr,
		ResetOtpExpires:  &expires,
		ResetOtpAttempts: 5,
	}, nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	// even the correct OTP is refused once attempts are exhausted
	err := service.VerifyResetOtp(context.Background(), "user@example.com", "123456")
	assert.True(t, apperror.IsKind(err, apperror.TooManyRequests))
}

func TestService_VerifyResetOtp_Expired(t *testing.T) {
	userRepo := new(mockUserRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	hashStr := string(hash)
	expired := time.Now().Add(-time.Minute)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		ID:              3,
		ResetOtpHash:    &hashStr,
		ResetOtpExpires: &expired,
	}, nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	err := service.VerifyResetOtp(context.Background(), "user@example.com", "123456")
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
	assert.Contains(t, err.Error(), "expired")
}

func TestService_VerifyResetOtp_MismatchIncrementsAttempts(t *testing.T) {
	userRepo := new(mockUserRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	hashStr := string(hash)
	expires := time.Now().Add(5 * time.Minute)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		ID:               3,
		ResetOtpHash:     &hashStr,
		ResetOtpExpires:  &expires,
		ResetOtpAttempts: 2,
	}, nil)
	userRepo.On("UpdateFields", mock.Anything, int64(3), map[string]any{
		"reset_otp_attempts": 3,
	}).Return(nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	err := service.VerifyResetOtp(context.Background(), "user@example.com", "654321")
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
	userRepo.AssertExpectations(t)
}

func TestService_VerifyResetOtp_MatchMarksVerified(t *testing.T) {
	userRepo := new(mockUserRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	hashStr := string(hash)
	expires := time.Now().Add(5 * time.Minute)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		ID:              3,
		ResetOtpHash:    &hashStr,
		ResetOtpExpires: &expires,
	}, nil)
	userRepo.On("UpdateFields", mock.Anything, int64(3), map[string]any{
		"reset_otp_verified": true,
	}).Return(nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	err := service.VerifyResetOtp(context.Background(), "user@example.com", "123456")
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestService_ResetPassword_Validation(t *testing.T) {
	service := newTestService(new(mockUserRepo), new(mockJWTService), new(mockMailer))
	ctx := context.Background()

	err := service.ResetPassword(ctx, "user@example.com", "newpass123", "different")
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))

	err = service.ResetPassword(ctx, "user@example.com", "short", "short")
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
}

func TestService_ResetPassword_RequiresVerifiedOtp(t *testing.T) {
	userRepo := new(mockUserRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	hashStr := string(hash)
	expires := time.Now().Add(5 * time.Minute)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		ID:               3,
		ResetOtpHash:     &hashStr,
		ResetOtpExpires:  &expires,
		ResetOtpVerified: false,
	}, nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	err := service.ResetPassword(context.Background(), "user@example.com", "newpass123", "newpass123")
	assert.True(t, apperror.IsKind(err, apperror.BadRequest))
}

func TestService_ResetPassword_SuccessClearsOtpState(t *testing.T) {
	userRepo := new(mockUserRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	hashStr := string(hash)
	expires := time.Now().Add(5 * time.Minute)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(&domain.User{
		ID:               3,
		ResetOtpHash:     &hashStr,
		ResetOtpExpires:  &expires,
		ResetOtpVerified: true,
	}, nil)
	userRepo.On("UpdateFields", mock.Anything, int64(3), mock.MatchedBy(func(fields map[string]any) bool {
		newHash, ok := fields["password_hash"].(string)
		if !ok || bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpass123")) != nil {
			return false
		}
		return fields["reset_otp_hash"] == nil &&
			fields["reset_otp_expires"] == nil &&
			fields["reset_otp_verified"] == false &&
			fields["reset_otp_attempts"] == 0 &&
			fields["reset_otp_last_sent_at"] == nil
	})).Return(nil)

	service := newTestService(userRepo, new(mockJWTService), new(mockMailer))

	err := service.ResetPassword(context.Background(), "user@example.com", "newpass123", "newpass123")
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}
