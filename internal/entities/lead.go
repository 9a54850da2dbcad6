package entities

import "time"

// CreateLeadRequest is the inquiry form: contact details plus tentative
// rental dates. The customer record is created together with the lead.
type CreateLeadRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Source     string `json:"source" validate:"omitempty,oneof=walk_in whatsapp phone website agent"`
	PickupDate string `json:"pickup_date" validate:"omitempty,datetime=2006-01-02"`
	DropDate   string `json:"drop_date" validate:"omitempty,datetime=2006-01-02"`
	Notes      string `json:"notes"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted quoted converted lost"`
}

type AssignLeadRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type LeadResponse struct {
	ID         string           `json:"id"`
	Status     string           `json:"status"`
	Source     string           `json:"source"`
	Notes      *string          `json:"notes"`
	PickupDate *string          `json:"pickup_date"`
	DropDate   *string          `json:"drop_date"`
	AssignedTo *string          `json:"assigned_to"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Customer   *CustomerSummary `json:"customer"`
}
