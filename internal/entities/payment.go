package entities

import "time"

// RecordPaymentRequest records a manually-settled payment. The hitpay
// method never goes through this path; it starts from a hosted checkout.
type RecordPaymentRequest struct {
	BookingID   string  `json:"booking_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Method      string  `json:"method" validate:"required,oneof=cash bank_transfer tng"`
	ReferenceNo *string `json:"reference_no"`
	Notes       *string `json:"notes"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid failed refunded"`
}

type PaymentResponse struct {
	ID          string     `json:"id"`
	BookingID   string     `json:"booking_id"`
	Amount      float64    `json:"amount"`
	Method      string     `json:"method"`
	ReferenceNo *string    `json:"reference_no"`
	Notes       *string    `json:"notes"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type BookingSummary struct {
	ID             string           `json:"id"`
	PickupDatetime time.Time        `json:"pickup_datetime"`
	DropDatetime   time.Time        `json:"drop_datetime"`
	PickupLocation string           `json:"pickup_location"`
	DropLocation   string           `json:"drop_location"`
	TotalAmount    float64          `json:"total_amount"`
	Status         string           `json:"status"`
	Customer       *CustomerSummary `json:"customer"`
	Vehicle        *VehicleSummary  `json:"vehicle"`
}

type PaymentWithBooking struct {
	PaymentResponse
	Booking *BookingSummary `json:"booking"`
}

type CheckoutResponse struct {
	PaymentURL string `json:"payment_url"`
}
