package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingCompleted BookingStatus = "completed"
)

type ServiceType string

const (
	ServiceInstallation ServiceType = "Installation"
	ServiceRepair       ServiceType = "Repair"
	ServicePolish       ServiceType = "Polish"
	ServiceInspection   ServiceType = "Inspection"
)

type FlooringType string

const (
	FlooringHomogeneous   FlooringType = "Homogeneous"
	FlooringHeterogeneous FlooringType = "Heterogeneous"
	FlooringSPC           FlooringType = "SPC"
	FlooringVinyl         FlooringType = "Vinyl"
	FlooringCarpet        FlooringType = "Carpet"
	FlooringWooden        FlooringType = "Wooden"
)

type PreferredTime string

const (
	TimeMorning   PreferredTime = "Morning 8-12"
	TimeAfternoon PreferredTime = "Afternoon 12-4"
	TimeEvening   PreferredTime = "Evening 4-8"
)

type Booking struct {
	ID            int64         `json:"id"`
	FullName      string        `json:"fullName" validate:"required,min=2,max=120"`
	PhoneNumber   string        `json:"phoneNumber" validate:"required"`
	Phone         string        `json:"phone,omitempty"` // raw alias of PhoneNumber
	Email         string        `json:"email,omitempty"`
	CityAddress   string        `json:"cityAddress" validate:"required,max=250"`
	ServiceType   ServiceType   `json:"serviceType"`
	FlooringType  FlooringType  `json:"flooringType"`
	AreaSize      float64       `json:"areaSize" validate:"required,gte=1"`
	PreferredDate time.Time     `json:"preferredDate"`
	PreferredTime PreferredTime `json:"preferredTime"`
	Notes         string        `json:"notes,omitempty"`
	RoomPhoto     string        `json:"roomPhoto,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedBy     int64         `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingPending, BookingCompleted:
		return true
	}
	return false
}

func ValidServiceType(s string) bool {
	switch ServiceType(s) {
	case ServiceInstallation, ServiceRepair, ServicePolish, ServiceInspection:
		return true
	}
	return false
}

func ValidFlooringType(s string) bool {
	switch FlooringType(s) {
	case FlooringHomogeneous, FlooringHeterogeneous, FlooringSPC, FlooringVinyl, FlooringCarpet, FlooringWooden:
		return true
	}
	return false
}

func ValidPreferredTime(s string) bool {
	switch PreferredTime(s) {
	case TimeMorning, TimeAfternoon, TimeEvening:
		return true
	}
	return false
}
