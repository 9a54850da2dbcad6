package service

import (
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"

	"kembara/internal/auth"
	"kembara/internal/db"
	"kembara/internal/entities"
	apperrors "kembara/internal/errors"
	"kembara/internal/repository"
)

// Lead statuses. A lead that becomes a booking is marked converted
// explicitly; creating the booking only records the lead_id link.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQuoted    = "quoted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// LeadSourceDefault is what the inquiry form falls back to when no source
// is given.
const LeadSourceDefault = "whatsapp"

type LeadStore interface {
	Create(l *db.Lead) error
	List(filter repository.LeadFilter) ([]entities.LeadResponse, error)
	UpdateStatus(id, status string) error
	Assign(id, userID string) error
}

// CustomerCreator is the slice of the user repository lead intake needs.
type CustomerCreator interface {
	CreateCustomer(c *db.Customer) error
}

// LeadService is the intake stage of the funnel: inquiries come in as
// leads, get worked by sales, and the winners turn into bookings.
type LeadService struct {
	leads     LeadStore
	customers CustomerCreator
}

func NewLeadService(leads LeadStore, customers CustomerCreator) *LeadService {
	return &LeadService{leads: leads, customers: customers}
}

// Create records an inquiry: the customer row first, then the lead that
// points at it. Any authenticated caller may create one (the inquiry page
// is open to customers); sales and agents are auto-assigned their own
// leads, everyone else leaves the lead unassigned.
func (s *LeadService) Create(user auth.User, req entities.CreateLeadRequest) (*db.Lead, error) {
	customer := &db.Customer{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if req.Phone != "" {
		phone := req.Phone
		customer.Phone = &phone
	}
	if req.Email != "" {
		email := req.Email
		customer.Email = &email
	}
	if err := s.customers.CreateCustomer(customer); err != nil {
		log.Printf("Error creating customer for lead: %v", err)
		return nil, apperrors.Internal("could not create lead")
	}

	source := req.Source
	if source == "" {
		source = LeadSourceDefault
	}

	lead := &db.Lead{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Source:     source,
		Status:     LeadStatusNew,
	}
	switch user.Role {
	case auth.RoleSales, auth.RoleAgent:
		id := user.ID
		lead.AssignedTo = &id
	}
	if req.Notes != "" {
		notes := req.Notes
		lead.Notes = &notes
	}
	if req.PickupDate != "" {
		pickup := req.PickupDate
		lead.PickupDate = &pickup
	}
	if req.DropDate != "" {
		drop := req.DropDate
		lead.DropDate = &drop
	}

	if err := s.leads.Create(lead); err != nil {
		log.Printf("Error creating lead: %v", err)
		return nil, apperrors.Internal("could not create lead")
	}
	return lead, nil
}

// List returns the lead queue: admin and agents see everything, sales
// only the leads assigned to them.
func (s *LeadService) List(user auth.User) ([]entities.LeadResponse, error) {
	filter := repository.LeadFilter{}
	switch user.Role {
	case auth.RoleAdmin, auth.RoleAgent:
	case auth.RoleSales:
		filter.AssignedTo = user.ID
	default:
		return nil, apperrors.Forbidden("not allowed to view leads")
	}
	return s.leads.List(filter)
}

// SetStatus moves a lead through the funnel stages.
func (s *LeadService) SetStatus(user auth.User, id, status string) error {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales, auth.RoleAgent:
	default:
		return apperrors.Forbidden("not allowed to update leads")
	}
	if err := s.leads.UpdateStatus(id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("lead not found")
		}
		return err
	}
	return nil
}

// Assign hands a lead to a staff member. Admin only.
func (s *LeadService) Assign(user auth.User, id, userID string) error {
	if user.Role != auth.RoleAdmin {
		return apperrors.Forbidden("only admin can assign leads")
	}
	if err := s.leads.Assign(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("lead not found")
		}
		return err
	}
	return nil
}
