package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"floorcare/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned by Create and UpdateFields when the
// unique email constraint is violated.
var ErrDuplicateEmail = errors.New("email already taken")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Email              string     `gorm:"column:email;uniqueIndex"`
	PasswordHash       string     `gorm:"column:password_hash"`
	Role               string     `gorm:"column:role"`
	FirstName          *string    `gorm:"column:first_name"`
	LastName           *string    `gorm:"column:last_name"`
	Mobile             *string    `gorm:"column:mobile"`
	Gender             *string    `gorm:"column:gender"`
	Address            *string    `gorm:"column:address"`
	AvatarURL          *string    `gorm:"column:avatar_url"`
	ResetOtpHash       *string    `gorm:"column:reset_otp_hash"`
	ResetOtpExpires    *time.Time `gorm:"column:reset_otp_expires"`
	ResetOtpVerified   bool       `gorm:"column:reset_otp_verified"`
	ResetOtpAttempts   int        `gorm:"column:reset_otp_attempts"`
	ResetOtpLastSentAt *time.Time `gorm:"column:reset_otp_last_sent_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:                 m.ID,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Role:               domain.UserRole(m.Role),
		FirstName:          deref(m.FirstName),
		LastName:           deref(m.LastName),
		Mobile:             deref(m.Mobile),
		Gender:             domain.Gender(deref(m.Gender)),
		Address:            deref(m.Address),
		AvatarURL:          deref(m.AvatarURL),
		ResetOtpHash:       m.ResetOtpHash,
		ResetOtpExpires:    m.ResetOtpExpires,
		ResetOtpVerified:   m.ResetOtpVerified,
		ResetOtpAttempts:   m.ResetOtpAttempts,
		ResetOtpLastSentAt: m.ResetOtpLastSentAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:                 u.ID,
		Email:              strings.TrimSpace(strings.ToLower(u.Email)),
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		FirstName:          ptr(u.FirstName),
		LastName:           ptr(u.LastName),
		Mobile:             ptr(u.Mobile),
		Gender:             ptr(string(u.Gender)),
		Address:            ptr(u.Address),
		AvatarURL:          ptr(u.AvatarURL),
		ResetOtpHash:       u.ResetOtpHash,
		ResetOtpExpires:    u.ResetOtpExpires,
		ResetOtpVerified:   u.ResetOtpVerified,
		ResetOtpAttempts:   u.ResetOtpAttempts,
		ResetOtpLastSentAt: u.ResetOtpLastSentAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite driver reports constraint failures as plain strings
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicateEmail
		}
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// UpdateFields applies a sparse patch to one user by id. Callers build
// the patch explicitly so no hidden row state is carried between reads
// and writes.
func (r *UserRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicateEmail
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
