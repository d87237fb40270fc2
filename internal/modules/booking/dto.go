package booking

import "floorcare/internal/domain"

type CreateBookingRequest struct {
	FullName      string  `json:"fullName"`
	PhoneNumber   string  `json:"phoneNumber"`
	Phone         string  `json:"phone"` // raw alias, used when phoneNumber absent
	Email         string  `json:"email"`
	CityAddress   string  `json:"cityAddress"`
	ServiceType   string  `json:"serviceType"`
	FlooringType  string  `json:"flooringType"`
	AreaSize      float64 `json:"areaSize"`
	PreferredDate string  `json:"preferredDate"`
	PreferredTime string  `json:"preferredTime"`
	Notes         string  `json:"notes"`
	RoomPhoto     string  `json:"roomPhoto"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type ListResult struct {
	Items      []domain.Booking `json:"items"`
	Pagination Pagination       `json:"pagination"`
}
