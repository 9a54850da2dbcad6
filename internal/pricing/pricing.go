package pricing

import (
	"math"
	"strings"
	"time"
)

// SSTPercent is the Malaysian services tax applied to the post-fee subtotal.
const SSTPercent = 8.0

type Vehicle struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	GroupType    string  `json:"group_type"`
	Seats        int     `json:"seats"`
	Luggage      int     `json:"luggage"`
	Transmission string  `json:"transmission"`
	BaseRate     float64 `json:"base_rate"`
	Status       string  `json:"status"`
	OwnerType    string  `json:"owner_type"`
	Branch       *string `json:"branch"`
}

// PriceRule is a duration-discount bracket. MaxDays nil means no upper bound.
type PriceRule struct {
	ID              string   `json:"id"`
	MinDays         float64  `json:"min_days"`
	MaxDays         *float64 `json:"max_days"`
	DiscountPercent float64  `json:"discount_percent"`
	Label           string   `json:"label"`
}

type Holiday struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Date          string  `json:"date"` // "2006-01-02"
	UpliftPercent float64 `json:"uplift_percent"`
}

type OneWayFee struct {
	ID           string  `json:"id"`
	FromLocation string  `json:"from_location"`
	ToLocation   string  `json:"to_location"`
	Fee          float64 `json:"fee"`
}

// Breakdown carries every intermediate value of a quote, not just the total;
// bookings persist it verbatim and it is never recomputed afterwards.
type Breakdown struct {
	Days            float64 `json:"days"`
	BaseRate        float64 `json:"base_rate"`
	BaseTotal       float64 `json:"base_total"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountLabel   string  `json:"discount_label"`
	DiscountAmount  float64 `json:"discount_amount"`
	IsOneWay        bool    `json:"is_one_way"`
	OneWayFee       float64 `json:"one_way_fee"`
	HasHoliday      bool    `json:"has_holiday"`
	HolidayName     string  `json:"holiday_name"`
	HolidayUplift   float64 `json:"holiday_uplift"`
	SubTotal        float64 `json:"subtotal"`
	SSTPercent      float64 `json:"sst_percent"`
	SSTAmount       float64 `json:"sst_amount"`
	TotalAmount     float64 `json:"total_amount"`
}

type Input struct {
	Vehicle        Vehicle
	PickupDatetime time.Time
	DropDatetime   time.Time
	PickupLocation string
	DropLocation   string
	PriceRules     []PriceRule
	Holidays       []Holiday
	OneWayFees     []OneWayFee
}

// Round2 rounds to two decimals, half away from zero.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// RentalDays converts a pickup/drop span into chargeable days, minimum 1.
// Leftover hours after the full days: under 4 cost half a day, 4 or more
// cost a full day, exactly zero cost nothing.
func RentalDays(pickup, drop time.Time) float64 {
	totalHours := drop.Sub(pickup).Hours()

	fullDays := math.Floor(totalHours / 24)
	remaining := totalHours - fullDays*24

	var days float64
	switch {
	case remaining == 0:
		days = fullDays
	case remaining < 4:
		days = fullDays + 0.5
	default:
		days = fullDays + 1
	}

	return math.Max(1, days)
}

// ResolveDiscount returns the first rule whose bracket contains days.
// Callers supply rules ordered by ascending min_days; no sorting here.
func ResolveDiscount(days float64, rules []PriceRule) (percent float64, label string) {
	for _, rule := range rules {
		if days >= rule.MinDays && (rule.MaxDays == nil || days <= *rule.MaxDays) {
			return rule.DiscountPercent, rule.Label
		}
	}
	return 0, ""
}

// ResolveHolidayUplift checks every calendar date in [pickup, drop] against
// the holiday list and returns the single highest uplift touched, ties
// broken by list order.
func ResolveHolidayUplift(pickup, drop time.Time, holidays []Holiday) (uplift float64, name string, hasHoliday bool) {
	dates := map[string]bool{}
	cursor := time.Date(pickup.Year(), pickup.Month(), pickup.Day(), 0, 0, 0, 0, pickup.Location())
	last := time.Date(drop.Year(), drop.Month(), drop.Day(), 0, 0, 0, 0, drop.Location())
	for !cursor.After(last) {
		dates[cursor.Format("2006-01-02")] = true
		cursor = cursor.AddDate(0, 0, 1)
	}

	for _, h := range holidays {
		if !dates[h.Date] {
			continue
		}
		if !hasHoliday || h.UpliftPercent > uplift {
			uplift = h.UpliftPercent
			name = h.Name
			hasHoliday = true
		}
	}
	return uplift, name, hasHoliday
}

// ResolveOneWayFee reports whether the trip is one-way (locations differ
// after trimming and case-folding) and the fee for the (from, to) pair.
// A one-way trip with no configured fee row costs zero; that is not an error.
func ResolveOneWayFee(pickupLocation, dropLocation string, fees []OneWayFee) (isOneWay bool, fee float64) {
	from := normalizeLocation(pickupLocation)
	to := normalizeLocation(dropLocation)
	if from == to {
		return false, 0
	}
	for _, f := range fees {
		if normalizeLocation(f.FromLocation) == from && normalizeLocation(f.ToLocation) == to {
			return true, f.Fee
		}
	}
	return true, 0
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Calculate composes the resolvers into a full price breakdown. Inputs are
// assumed validated (drop after pickup, vehicle present); zero discount,
// zero uplift and zero fee are regular outcomes. Every intermediate amount
// is rounded to two decimals before the next step, no running unrounded
// totals. The holiday uplift is charged on the post-discount amount.
func Calculate(in Input) Breakdown {
	days := RentalDays(in.PickupDatetime, in.DropDatetime)

	baseRate := in.Vehicle.BaseRate
	baseTotal := Round2(baseRate * days)

	discountPercent, discountLabel := ResolveDiscount(days, in.PriceRules)
	discountAmount := Round2(baseTotal * discountPercent / 100)
	afterDiscount := Round2(baseTotal - discountAmount)

	isOneWay, oneWayFee := ResolveOneWayFee(in.PickupLocation, in.DropLocation, in.OneWayFees)

	uplift, holidayName, hasHoliday := ResolveHolidayUplift(in.PickupDatetime, in.DropDatetime, in.Holidays)
	holidayAmount := Round2(afterDiscount * uplift / 100)

	subtotal := Round2(afterDiscount + oneWayFee + holidayAmount)
	sstAmount := Round2(subtotal * SSTPercent / 100)
	totalAmount := Round2(subtotal + sstAmount)

	return Breakdown{
		Days:            days,
		BaseRate:        baseRate,
		BaseTotal:       baseTotal,
		DiscountPercent: discountPercent,
		DiscountLabel:   discountLabel,
		DiscountAmount:  discountAmount,
		IsOneWay:        isOneWay,
		OneWayFee:       oneWayFee,
		HasHoliday:      hasHoliday,
		HolidayName:     holidayName,
		HolidayUplift:   uplift,
		SubTotal:        subtotal,
		SSTPercent:      SSTPercent,
		SSTAmount:       sstAmount,
		TotalAmount:     totalAmount,
	}
}
