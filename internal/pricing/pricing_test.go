package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func dt(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func f64(v float64) *float64 { return &v }

func TestRentalDays(t *testing.T) {
	cases := []struct {
		name   string
		pickup string
		drop   string
		want   float64
	}{
		{"exact two days", "2026-03-01 10:00", "2026-03-03 10:00", 2},
		{"two hours over charges half a day", "2026-03-01 10:00", "2026-03-03 12:00", 2.5},
		{"five hours over charges a full day", "2026-03-01 10:00", "2026-03-03 15:00", 3},
		{"four hours over is the full-day boundary", "2026-03-01 10:00", "2026-03-03 14:00", 3},
		{"short rental still charges one day", "2026-03-01 10:00", "2026-03-01 12:00", 1},
		{"exactly 24 hours", "2026-03-01 10:00", "2026-03-02 10:00", 1},
		{"27 hours is a day and a half", "2026-03-01 10:00", "2026-03-02 13:00", 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, RentalDays(dt(tc.pickup), dt(tc.drop)))
		})
	}
}

func TestResolveDiscountFirstMatchWins(t *testing.T) {
	rules := []PriceRule{
		{MinDays: 1, MaxDays: f64(5), DiscountPercent: 10, Label: "short"},
		{MinDays: 3, MaxDays: f64(7), DiscountPercent: 20, Label: "week"},
	}

	percent, label := ResolveDiscount(4, rules)
	require.Equal(t, 10.0, percent)
	require.Equal(t, "short", label)

	percent, label = ResolveDiscount(6, rules)
	require.Equal(t, 20.0, percent)
	require.Equal(t, "week", label)
}

func TestResolveDiscountOpenEndedBracket(t *testing.T) {
	rules := []PriceRule{
		{MinDays: 1, MaxDays: f64(6), DiscountPercent: 5, Label: "short"},
		{MinDays: 7, DiscountPercent: 15, Label: "long"},
	}

	percent, label := ResolveDiscount(30, rules)
	require.Equal(t, 15.0, percent)
	require.Equal(t, "long", label)

	percent, label = ResolveDiscount(0.5, rules)
	require.Zero(t, percent)
	require.Empty(t, label)
}

func TestResolveHolidayUpliftPicksHighestNotSum(t *testing.T) {
	holidays := []Holiday{
		{Name: "Hari Raya", Date: "2026-03-21", UpliftPercent: 10},
		{Name: "School Break", Date: "2026-03-22", UpliftPercent: 25},
	}

	uplift, name, hit := ResolveHolidayUplift(dt("2026-03-20 10:00"), dt("2026-03-23 10:00"), holidays)
	require.True(t, hit)
	require.Equal(t, 25.0, uplift)
	require.Equal(t, "School Break", name)
}

func TestResolveHolidayUpliftTieKeepsFirstListed(t *testing.T) {
	holidays := []Holiday{
		{Name: "First", Date: "2026-03-21", UpliftPercent: 10},
		{Name: "Second", Date: "2026-03-22", UpliftPercent: 10},
	}

	_, name, hit := ResolveHolidayUplift(dt("2026-03-20 10:00"), dt("2026-03-23 10:00"), holidays)
	require.True(t, hit)
	require.Equal(t, "First", name)
}

func TestResolveHolidayUpliftOutsideRange(t *testing.T) {
	holidays := []Holiday{{Name: "Merdeka", Date: "2026-08-31", UpliftPercent: 20}}

	uplift, name, hit := ResolveHolidayUplift(dt("2026-03-01 10:00"), dt("2026-03-03 10:00"), holidays)
	require.False(t, hit)
	require.Zero(t, uplift)
	require.Empty(t, name)
}

func TestResolveOneWayFee(t *testing.T) {
	fees := []OneWayFee{
		{FromLocation: "KL Sentral", ToLocation: "Penang", Fee: 150},
	}

	isOneWay, fee := ResolveOneWayFee("  kl sentral ", "PENANG", fees)
	require.True(t, isOneWay)
	require.Equal(t, 150.0, fee)

	// The pair is directional; the reverse trip has no configured fee.
	isOneWay, fee = ResolveOneWayFee("Penang", "KL Sentral", fees)
	require.True(t, isOneWay)
	require.Zero(t, fee)

	isOneWay, fee = ResolveOneWayFee("KL Sentral", " KL SENTRAL", fees)
	require.False(t, isOneWay)
	require.Zero(t, fee)
}

func TestCalculate(t *testing.T) {
	in := Input{
		Vehicle:        Vehicle{ID: "v1", BaseRate: 200},
		PickupDatetime: dt("2026-03-01 10:00"),
		DropDatetime:   dt("2026-03-03 12:00"), // 50h = 2.5 days
		PickupLocation: "KL Sentral",
		DropLocation:   "Penang",
		PriceRules: []PriceRule{
			{MinDays: 2, MaxDays: f64(4), DiscountPercent: 10, Label: "2-4 days"},
		},
		Holidays: []Holiday{
			{Name: "Hari Raya", Date: "2026-03-02", UpliftPercent: 10},
		},
		OneWayFees: []OneWayFee{
			{FromLocation: "kl sentral", ToLocation: "penang", Fee: 50},
		},
	}

	got := Calculate(in)

	require.Equal(t, 2.5, got.Days)
	require.Equal(t, 200.0, got.BaseRate)
	require.Equal(t, 500.0, got.BaseTotal)
	require.Equal(t, 10.0, got.DiscountPercent)
	require.Equal(t, "2-4 days", got.DiscountLabel)
	require.Equal(t, 50.0, got.DiscountAmount)
	require.True(t, got.IsOneWay)
	require.Equal(t, 50.0, got.OneWayFee)
	require.True(t, got.HasHoliday)
	require.Equal(t, "Hari Raya", got.HolidayName)
	require.Equal(t, 10.0, got.HolidayUplift)
	// (500 - 50) + 50 one-way + 45 holiday uplift on the discounted amount.
	require.Equal(t, 545.0, got.SubTotal)
	require.Equal(t, SSTPercent, got.SSTPercent)
	require.Equal(t, 43.6, got.SSTAmount)
	require.Equal(t, 588.6, got.TotalAmount)
}

func TestCalculateNoExtras(t *testing.T) {
	in := Input{
		Vehicle:        Vehicle{ID: "v1", BaseRate: 120},
		PickupDatetime: dt("2026-03-01 10:00"),
		DropDatetime:   dt("2026-03-02 10:00"),
		PickupLocation: "KL Sentral",
		DropLocation:   "KL Sentral",
	}

	got := Calculate(in)

	require.Equal(t, 1.0, got.Days)
	require.Equal(t, 120.0, got.BaseTotal)
	require.Zero(t, got.DiscountAmount)
	require.False(t, got.IsOneWay)
	require.False(t, got.HasHoliday)
	require.Equal(t, 120.0, got.SubTotal)
	require.Equal(t, 9.6, got.SSTAmount)
	require.Equal(t, 129.6, got.TotalAmount)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 43.6, Round2(43.6000000001))
	require.Equal(t, 0.13, Round2(0.125))
	require.Equal(t, -0.13, Round2(-0.125))
}
