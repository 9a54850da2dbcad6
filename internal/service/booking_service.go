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
	"kembara/internal/pricing"
	"kembara/internal/repository"
)

// CatalogStore serves the pricing reference tables. Price rules come back
// ordered by ascending min_days.
type CatalogStore interface {
	Vehicles(onlyAvailable bool) ([]pricing.Vehicle, error)
	PriceRules() ([]pricing.PriceRule, error)
	Holidays() ([]pricing.Holiday, error)
	OneWayFees() ([]pricing.OneWayFee, error)
}

type BookingStore interface {
	Create(b *db.Booking) error
	GetByID(id string) (*db.Booking, error)
	List(filter repository.BookingFilter) ([]entities.BookingResponse, error)
	UpdateStatus(id, status string) error
	UpdateStatusIf(id, from, to string) (bool, error)
}

// CustomerDirectory resolves customer records and the email→customer-ids
// mapping that scopes customer reads.
type CustomerDirectory interface {
	CustomerByID(id string) (*db.Customer, error)
	CustomerIDsByEmail(email string) ([]string, error)
	ListCustomers() ([]db.Customer, error)
}

// Notifier delivers best-effort booking status notifications.
type Notifier interface {
	BookingStatusChanged(b *db.Booking, c *db.Customer, status string)
}

type BookingService struct {
	bookings  BookingStore
	catalog   CatalogStore
	customers CustomerDirectory
	notifier  Notifier
}

func NewBookingService(bookings BookingStore, catalog CatalogStore, customers CustomerDirectory, notifier Notifier) *BookingService {
	return &BookingService{
		bookings:  bookings,
		catalog:   catalog,
		customers: customers,
		notifier:  notifier,
	}
}

// PricingData returns the reference tables the quote form needs; only
// available vehicles are exposed.
func (s *BookingService) PricingData(user auth.User) (*entities.PricingData, error) {
	vehicles, err := s.catalog.Vehicles(true)
	if err != nil {
		return nil, err
	}
	rules, err := s.catalog.PriceRules()
	if err != nil {
		return nil, err
	}
	holidays, err := s.catalog.Holidays()
	if err != nil {
		return nil, err
	}
	fees, err := s.catalog.OneWayFees()
	if err != nil {
		return nil, err
	}
	return &entities.PricingData{
		Vehicles:   vehicles,
		PriceRules: rules,
		Holidays:   holidays,
		OneWayFees: fees,
	}, nil
}

// CalculateQuote validates the inputs, loads reference data and runs the
// pricing engine. Malformed dates and unknown vehicles are rejected here;
// the engine itself assumes clean input.
func (s *BookingService) CalculateQuote(user auth.User, req entities.QuoteRequest) (*pricing.Breakdown, error) {
	if !req.DropDatetime.After(req.PickupDatetime) {
		return nil, apperrors.BadRequest("drop datetime must be after pickup datetime")
	}

	data, err := s.PricingData(user)
	if err != nil {
		return nil, err
	}

	var vehicle *pricing.Vehicle
	for i := range data.Vehicles {
		if data.Vehicles[i].ID == req.VehicleID {
			vehicle = &data.Vehicles[i]
			break
		}
	}
	if vehicle == nil {
		return nil, apperrors.NotFound("vehicle not found or unavailable")
	}

	breakdown := pricing.Calculate(pricing.Input{
		Vehicle:        *vehicle,
		PickupDatetime: req.PickupDatetime,
		DropDatetime:   req.DropDatetime,
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		PriceRules:     data.PriceRules,
		Holidays:       data.Holidays,
		OneWayFees:     data.OneWayFees,
	})
	return &breakdown, nil
}

// Create inserts a booking from a pre-calculated breakdown. Always draft;
// the caller becomes the sales owner.
func (s *BookingService) Create(user auth.User, req entities.CreateBookingRequest) (*db.Booking, error) {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales, auth.RoleAgent:
	default:
		return nil, apperrors.Forbidden("not allowed to create bookings")
	}
	if !req.DropDatetime.After(req.PickupDatetime) {
		return nil, apperrors.BadRequest("drop datetime must be after pickup datetime")
	}

	pb := req.Breakdown
	booking := &db.Booking{
		ID:              uuid.NewString(),
		LeadID:          req.LeadID,
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		SalesID:         user.ID,
		PickupDatetime:  req.PickupDatetime,
		DropDatetime:    req.DropDatetime,
		PickupLocation:  req.PickupLocation,
		DropLocation:    req.DropLocation,
		IsOneWay:        pb.IsOneWay,
		Days:            pb.Days,
		BaseRate:        pb.BaseRate,
		DiscountPercent: pb.DiscountPercent,
		DiscountAmount:  pb.DiscountAmount,
		OneWayFee:       pb.OneWayFee,
		HolidayUplift:   pb.HolidayUplift,
		Subtotal:        pb.SubTotal,
		SSTPercent:      pb.SSTPercent,
		SSTAmount:       pb.SSTAmount,
		TotalAmount:     pb.TotalAmount,
		Status:          StatusDraft,
		Notes:           req.Notes,
	}
	if err := s.bookings.Create(booking); err != nil {
		log.Printf("Error creating booking: %v", err)
		return nil, apperrors.Internal("could not create booking")
	}
	return booking, nil
}

// List returns bookings visible to the caller: admin everything,
// sales/agent their own rows, customer the bookings of their customer
// records.
func (s *BookingService) List(user auth.User, status, date string) ([]entities.BookingResponse, error) {
	filter := repository.BookingFilter{Status: status, Date: date}
	switch user.Role {
	case auth.RoleAdmin:
	case auth.RoleSales, auth.RoleAgent:
		filter.SalesID = user.ID
	case auth.RoleCustomer:
		ids, err := s.customers.CustomerIDsByEmail(user.Email)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		filter.CustomerIDs = ids
	default:
		return nil, apperrors.Forbidden("not allowed to view bookings")
	}
	return s.bookings.List(filter)
}

// Get loads one booking, applying the same visibility rules as List. A
// booking outside the caller's scope reads as not found, never as a
// permission hint.
func (s *BookingService) Get(user auth.User, id string) (*db.Booking, error) {
	booking, err := s.getVisible(user, id)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// MarkQuoted moves a draft booking to quoted, making it acceptable by the
// customer.
func (s *BookingService) MarkQuoted(user auth.User, id string) error {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales, auth.RoleAgent:
	default:
		return apperrors.Forbidden("not allowed to update bookings")
	}
	booking, err := s.getVisible(user, id)
	if err != nil {
		return err
	}
	ok, err := s.bookings.UpdateStatusIf(booking.ID, StatusDraft, StatusQuoted)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.BadRequest("only draft bookings can be quoted")
	}
	return nil
}

// Confirm is the customer accepting a quote. The conditional update
// enforces that a quote was presented first: confirming straight from
// draft is rejected.
func (s *BookingService) Confirm(user auth.User, id string) error {
	if user.Role != auth.RoleCustomer {
		return apperrors.Forbidden("only customers can confirm a quote")
	}
	booking, err := s.getVisible(user, id)
	if err != nil {
		return err
	}
	ok, err := s.bookings.UpdateStatusIf(booking.ID, StatusQuoted, StatusConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.BadRequest("booking must be quoted before it can be confirmed")
	}
	s.notifyStatus(booking, StatusConfirmed)
	return nil
}

// Cancel is an administrative action; any non-terminal booking can be
// cancelled, nothing else changes.
func (s *BookingService) Cancel(user auth.User, id string) error {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales, auth.RoleAgent:
	default:
		return apperrors.Forbidden("not allowed to cancel bookings")
	}
	booking, err := s.getVisible(user, id)
	if err != nil {
		return err
	}
	if IsTerminalStatus(booking.Status) {
		return apperrors.BadRequest("booking is already completed or cancelled")
	}
	return s.bookings.UpdateStatus(booking.ID, StatusCancelled)
}

// SetStatus is the admin override, still gated by the transition table.
func (s *BookingService) SetStatus(user auth.User, id, newStatus string) error {
	if user.Role != auth.RoleAdmin {
		return apperrors.Forbidden("only admin can set booking status")
	}
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("booking not found")
		}
		return err
	}
	if booking.Status == newStatus {
		return nil
	}
	if !CanTransition(booking.Status, newStatus) {
		return apperrors.BadRequest("invalid status transition")
	}
	ok, err := s.bookings.UpdateStatusIf(booking.ID, booking.Status, newStatus)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.BadRequest("invalid status transition")
	}
	if newStatus == StatusConfirmed {
		s.notifyStatus(booking, newStatus)
	}
	return nil
}

// ListCustomers backs the quote form dropdown.
func (s *BookingService) ListCustomers(user auth.User) ([]db.Customer, error) {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales, auth.RoleAgent:
	default:
		return nil, apperrors.Forbidden("not allowed to view customers")
	}
	return s.customers.ListCustomers()
}

// getVisible loads a booking and checks the caller may see it. Ownership
// failures surface as not-found so callers cannot enumerate ids.
func (s *BookingService) getVisible(user auth.User, id string) (*db.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, err
	}

	switch user.Role {
	case auth.RoleAdmin:
		return booking, nil
	case auth.RoleSales, auth.RoleAgent:
		if booking.SalesID != user.ID {
			return nil, apperrors.NotFound("booking not found")
		}
		return booking, nil
	case auth.RoleCustomer:
		ids, err := s.customers.CustomerIDsByEmail(user.Email)
		if err != nil {
			return nil, err
		}
		for _, cid := range ids {
			if cid == booking.CustomerID {
				return booking, nil
			}
		}
		return nil, apperrors.NotFound("booking not found")
	default:
		return nil, apperrors.Forbidden("not allowed to view bookings")
	}
}

func (s *BookingService) notifyStatus(booking *db.Booking, status string) {
	if s.notifier == nil {
		return
	}
	customer, err := s.customers.CustomerByID(booking.CustomerID)
	if err != nil {
		log.Printf("Booking %s: could not load customer for notification: %v", booking.ID, err)
		return
	}
	s.notifier.BookingStatusChanged(booking, customer, status)
}
