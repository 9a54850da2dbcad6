package entities

import (
	"time"

	"kembara/internal/pricing"
)

type CreateBookingRequest struct {
	LeadID         *string           `json:"lead_id"`
	CustomerID     string            `json:"customer_id" validate:"required"`
	VehicleID      string            `json:"vehicle_id" validate:"required"`
	PickupDatetime time.Time         `json:"pickup_datetime" validate:"required"`
	DropDatetime   time.Time         `json:"drop_datetime" validate:"required"`
	PickupLocation string            `json:"pickup_location" validate:"required"`
	DropLocation   string            `json:"drop_location" validate:"required"`
	Notes          *string           `json:"notes"`
	Breakdown      pricing.Breakdown `json:"breakdown" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft quoted confirmed ongoing completed cancelled"`
}

type CustomerSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type VehicleSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	GroupType string `json:"group_type"`
}

type BookingResponse struct {
	ID              string           `json:"id"`
	LeadID          *string          `json:"lead_id"`
	CustomerID      string           `json:"customer_id"`
	VehicleID       string           `json:"vehicle_id"`
	SalesID         string           `json:"sales_id"`
	PickupDatetime  time.Time        `json:"pickup_datetime"`
	DropDatetime    time.Time        `json:"drop_datetime"`
	PickupLocation  string           `json:"pickup_location"`
	DropLocation    string           `json:"drop_location"`
	IsOneWay        bool             `json:"is_one_way"`
	Days            float64          `json:"days"`
	BaseRate        float64          `json:"base_rate"`
	DiscountPercent float64          `json:"discount_percent"`
	DiscountAmount  float64          `json:"discount_amount"`
	OneWayFee       float64          `json:"one_way_fee"`
	HolidayUplift   float64          `json:"holiday_uplift"`
	Subtotal        float64          `json:"subtotal"`
	SSTPercent      float64          `json:"sst_percent"`
	SSTAmount       float64          `json:"sst_amount"`
	TotalAmount     float64          `json:"total_amount"`
	Status          string           `json:"status"`
	Notes           *string          `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
	Customer        *CustomerSummary `json:"customer"`
	Vehicle         *VehicleSummary  `json:"vehicle"`
}
