package entities

import (
	"time"

	"kembara/internal/pricing"
)

type QuoteRequest struct {
	VehicleID      string    `json:"vehicle_id" validate:"required"`
	PickupDatetime time.Time `json:"pickup_datetime" validate:"required"`
	DropDatetime   time.Time `json:"drop_datetime" validate:"required"`
	PickupLocation string    `json:"pickup_location" validate:"required"`
	DropLocation   string    `json:"drop_location" validate:"required"`
}

// PricingData bundles the reference tables the quote form needs. Vehicles
// are pre-filtered to available status.
type PricingData struct {
	Vehicles   []pricing.Vehicle   `json:"vehicles"`
	PriceRules []pricing.PriceRule `json:"price_rules"`
	Holidays   []pricing.Holiday   `json:"holidays"`
	OneWayFees []pricing.OneWayFee `json:"one_way_fees"`
}

type QuoteResponse struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
}
