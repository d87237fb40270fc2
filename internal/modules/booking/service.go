package booking

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"floorcare/internal/domain"
	"floorcare/internal/pkg/apperror"

	"gorm.io/gorm"
)

// 10 local digits, or the +977 country code followed by 10 digits
var phoneRegex = regexp.MustCompile(`^(?:\d{10}|\+977\d{10})$`)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Service struct {
	bookings BookingRepositoryInterface
	users    UserReader
}

func NewService(bookings BookingRepositoryInterface, users UserReader) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
	}
}

func (s *Service) isAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.Unauthorizedf("User not found")
		}
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

// validateCreatePayload trims and validates every field, then
// canonicalizes phone and email. Violations name the offending field.
func validateCreatePayload(req CreateBookingRequest) (*domain.Booking, error) {
	// limits count characters, not bytes
	fullName := strings.TrimSpace(req.FullName)
	if n := utf8.RuneCountInString(fullName); n < 2 || n > 120 {
		return nil, apperror.BadRequestf("Full name must be between 2 and 120 characters")
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		phone = strings.TrimSpace(req.Phone)
	}
	if !phoneRegex.MatchString(phone) {
		return nil, apperror.BadRequestf("Phone must be 10 digits or +977 followed by 10 digits")
	}

	cityAddress := strings.TrimSpace(req.CityAddress)
	if cityAddress == "" || utf8.RuneCountInString(cityAddress) > 250 {
		return nil, apperror.BadRequestf("City address is required and must be at most 250 characters")
	}

	if !domain.ValidServiceType(req.ServiceType) {
		return nil, apperror.BadRequestf("Invalid service type")
	}
	if !domain.ValidFlooringType(req.FlooringType) {
		return nil, apperror.BadRequestf("Invalid flooring type")
	}
	if !domain.ValidPreferredTime(req.PreferredTime) {
		return nil, apperror.BadRequestf("Invalid preferred time")
	}

	if math.IsNaN(req.AreaSize) || math.IsInf(req.AreaSize, 0) || req.AreaSize < 1 {
		return nil, apperror.BadRequestf("Area size must be at least 1")
	}

	preferredDate, err := parseDate(req.PreferredDate)
	if err != nil {
		return nil, apperror.BadRequestf("Preferred date is invalid")
	}
	// compare calendar dates only; time of day and zone are ignored
	today := dateOnly(time.Now())
	if dateOnly(preferredDate).Before(today) {
		return nil, apperror.BadRequestf("Preferred date cannot be in the past")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if utf8.RuneCountInString(email) > 180 {
		return nil, apperror.BadRequestf("Email must be at most 180 characters")
	}

	if utf8.RuneCountInString(req.Notes) > 2000 {
		return nil, apperror.BadRequestf("Notes must be at most 2000 characters")
	}

	return &domain.Booking{
		FullName:      fullName,
		PhoneNumber:   phone,
		Phone:         phone,
		Email:         email,
		CityAddress:   cityAddress,
		ServiceType:   domain.ServiceType(req.ServiceType),
		FlooringType:  domain.FlooringType(req.FlooringType),
		AreaSize:      req.AreaSize,
		PreferredDate: preferredDate,
		PreferredTime: domain.PreferredTime(req.PreferredTime),
		Notes:         req.Notes,
		RoomPhoto:     strings.TrimSpace(req.RoomPhoto),
		Status:        domain.BookingPending,
	}, nil
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	b, err := validateCreatePayload(req)
	if err != nil {
		return nil, err
	}

	b.CreatedBy = userID
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, page, limit int, status string) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	// clamp into [1, maxPageLimit]; the default applies only when the
	// query parameter is absent
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if status != "" && !domain.ValidBookingStatus(status) {
		return nil, apperror.BadRequestf("Invalid status")
	}

	total, err := s.bookings.CountByCreator(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	items, err := s.bookings.ListByCreator(ctx, userID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

func (s *Service) GetBookingByID(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b.CreatedBy != userID && !isAdmin {
		return nil, apperror.Forbiddenf("Forbidden")
	}

	return b, nil
}

// UpdateBookingStatus lets only admins change status. Owners are
// refused as well; completion is confirmed by staff, not customers.
func (s *Service) UpdateBookingStatus(ctx context.Context, userID, id int64, status string) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, apperror.BadRequestf("Invalid status")
	}

	if _, err := s.getBooking(ctx, id); err != nil {
		return nil, err
	}

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperror.Forbiddenf("Forbidden")
	}

	return s.bookings.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteBooking(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b.CreatedBy != userID && !isAdmin {
		return nil, apperror.Forbiddenf("Forbidden")
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

// Admin variants bypass ownership checks entirely.

func (s *Service) GetAllBookingsAdmin(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *Service) GetBookingByIDAdmin(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Service) UpdateBookingStatusAdmin(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, apperror.BadRequestf("Invalid status")
	}

	b, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("Booking not found")
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBookingAdmin(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("Booking not found")
		}
		return nil, err
	}
	return b, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparseable date")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
