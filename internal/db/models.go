package db

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Customer struct {
	ID        string
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
}

// Lead is an inquiry before it becomes a booking. The customer row is
// created together with the lead; PickupDate and DropDate are tentative
// calendar dates ("2006-01-02"), not the confirmed datetimes a booking
// carries.
type Lead struct {
	ID         string
	CustomerID string
	Source     string
	Status     string
	AssignedTo *string
	Notes      *string
	PickupDate *string
	DropDate   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Booking carries the price breakdown flattened in at creation time; the
// amounts are never recomputed from live reference data afterwards.
type Booking struct {
	ID              string
	LeadID          *string
	CustomerID      string
	VehicleID       string
	SalesID         string
	PickupDatetime  time.Time
	DropDatetime    time.Time
	PickupLocation  string
	DropLocation    string
	IsOneWay        bool
	Days            float64
	BaseRate        float64
	DiscountPercent float64
	DiscountAmount  float64
	OneWayFee       float64
	HolidayUplift   float64
	Subtotal        float64
	SSTPercent      float64
	SSTAmount       float64
	TotalAmount     float64
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Payment struct {
	ID                     string
	BookingID              string
	Amount                 float64
	Method                 string
	ReferenceNo            *string
	Notes                  *string
	Status                 string
	PaidAt                 *time.Time
	HitpayPaymentRequestID *string
	HitpayPaymentID        *string
	CreatedAt              time.Time
}
