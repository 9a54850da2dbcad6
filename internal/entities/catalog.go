package entities

type VehicleRequest struct {
	Name         string  `json:"name" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	GroupType    string  `json:"group_type" validate:"required"`
	Seats        int     `json:"seats" validate:"required,gt=0"`
	Luggage      int     `json:"luggage" validate:"gte=0"`
	Transmission string  `json:"transmission" validate:"required,oneof=auto manual"`
	BaseRate     float64 `json:"base_rate" validate:"required,gt=0"`
	Status       string  `json:"status" validate:"required,oneof=available rented maintenance"`
	OwnerType    string  `json:"owner_type" validate:"required,oneof=company supplier"`
	Branch       *string `json:"branch"`
}

type PriceRuleRequest struct {
	MinDays         float64  `json:"min_days" validate:"required,gte=0.5"`
	MaxDays         *float64 `json:"max_days" validate:"omitempty,gtefield=MinDays"`
	DiscountPercent float64  `json:"discount_percent" validate:"gte=0,lte=100"`
	Label           string   `json:"label" validate:"required"`
}

type HolidayRequest struct {
	Name          string  `json:"name" validate:"required"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	UpliftPercent float64 `json:"uplift_percent" validate:"gte=0"`
}

type OneWayFeeRequest struct {
	FromLocation string  `json:"from_location" validate:"required"`
	ToLocation   string  `json:"to_location" validate:"required"`
	Fee          float64 `json:"fee" validate:"gte=0"`
}
