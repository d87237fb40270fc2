package repository

import (
	"context"
	"time"

	"floorcare/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	FullName      string    `gorm:"column:full_name"`
	PhoneNumber   string    `gorm:"column:phone_number"`
	Phone         *string   `gorm:"column:phone"`
	Email         *string   `gorm:"column:email"`
	CityAddress   string    `gorm:"column:city_address"`
	ServiceType   string    `gorm:"column:service_type"`
	FlooringType  string    `gorm:"column:flooring_type"`
	AreaSize      float64   `gorm:"column:area_size"`
	PreferredDate time.Time `gorm:"column:preferred_date"`
	PreferredTime string    `gorm:"column:preferred_time"`
	Notes         *string   `gorm:"column:notes"`
	RoomPhoto     *string   `gorm:"column:room_photo"`
	Status        string    `gorm:"column:status"`
	CreatedBy     int64     `gorm:"column:created_by;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		FullName:      m.FullName,
		PhoneNumber:   m.PhoneNumber,
		Phone:         deref(m.Phone),
		Email:         deref(m.Email),
		CityAddress:   m.CityAddress,
		ServiceType:   domain.ServiceType(m.ServiceType),
		FlooringType:  domain.FlooringType(m.FlooringType),
		AreaSize:      m.AreaSize,
		PreferredDate: m.PreferredDate,
		PreferredTime: domain.PreferredTime(m.PreferredTime),
		Notes:         deref(m.Notes),
		RoomPhoto:     deref(m.RoomPhoto),
		Status:        domain.BookingStatus(m.Status),
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		FullName:      b.FullName,
		PhoneNumber:   b.PhoneNumber,
		Phone:         ptr(b.Phone),
		Email:         ptr(b.Email),
		CityAddress:   b.CityAddress,
		ServiceType:   string(b.ServiceType),
		FlooringType:  string(b.FlooringType),
		AreaSize:      b.AreaSize,
		PreferredDate: b.PreferredDate,
		PreferredTime: string(b.PreferredTime),
		Notes:         ptr(b.Notes),
		RoomPhoto:     ptr(b.RoomPhoto),
		Status:        string(b.Status),
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListByCreator returns the creator's bookings newest-first, optionally
// filtered by status. An empty status means no filter.
func (r *BookingRepository) ListByCreator(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where("created_by = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []bookingModel
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) CountByCreator(ctx context.Context, userID int64, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where("created_by = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var count int64
	if tx := q.Count(&count); tx.Error != nil {
		return 0, tx.Error
	}
	return count, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatus sets the status by id and returns the fresh row.
// created_by is never part of any update.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
