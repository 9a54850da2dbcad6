package service

import (
	"database/sql"
	"time"

	"kembara/internal/db"
	"kembara/internal/entities"
	"kembara/internal/pricing"
	"kembara/internal/repository"
)

// In-memory stand-ins for the store interfaces. They keep just enough
// state to observe what the services wrote.

type fakeCatalog struct {
	vehicles []pricing.Vehicle
	rules    []pricing.PriceRule
	holidays []pricing.Holiday
	fees     []pricing.OneWayFee
}

func (f *fakeCatalog) Vehicles(onlyAvailable bool) ([]pricing.Vehicle, error) {
	if !onlyAvailable {
		return f.vehicles, nil
	}
	var out []pricing.Vehicle
	for _, v := range f.vehicles {
		if v.Status == "available" {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeCatalog) PriceRules() ([]pricing.PriceRule, error) { return f.rules, nil }
func (f *fakeCatalog) Holidays() ([]pricing.Holiday, error)    { return f.holidays, nil }
func (f *fakeCatalog) OneWayFees() ([]pricing.OneWayFee, error) { return f.fees, nil }

type fakeBookings struct {
	byID       map[string]*db.Booking
	listed     []entities.BookingResponse
	lastFilter repository.BookingFilter
}

func newFakeBookings(bookings ...*db.Booking) *fakeBookings {
	f := &fakeBookings{byID: map[string]*db.Booking{}}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookings) Create(b *db.Booking) error {
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookings) GetByID(id string) (*db.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return b, nil
}

func (f *fakeBookings) List(filter repository.BookingFilter) ([]entities.BookingResponse, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeBookings) UpdateStatus(id, status string) error {
	b, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.Status = status
	return nil
}

func (f *fakeBookings) UpdateStatusIf(id, from, to string) (bool, error) {
	b, ok := f.byID[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

type fakeCustomers struct {
	byID    map[string]*db.Customer
	byEmail map[string][]string
	all     []db.Customer
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{
		byID:    map[string]*db.Customer{},
		byEmail: map[string][]string{},
	}
}

func (f *fakeCustomers) add(c *db.Customer, email string) {
	f.byID[c.ID] = c
	if email != "" {
		f.byEmail[email] = append(f.byEmail[email], c.ID)
	}
	f.all = append(f.all, *c)
}

func (f *fakeCustomers) CreateCustomer(c *db.Customer) error {
	c.CreatedAt = time.Now()
	f.byID[c.ID] = c
	f.all = append(f.all, *c)
	return nil
}

func (f *fakeCustomers) CustomerByID(id string) (*db.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCustomers) CustomerIDsByEmail(email string) ([]string, error) {
	return f.byEmail[email], nil
}

func (f *fakeCustomers) ListCustomers() ([]db.Customer, error) { return f.all, nil }

type notification struct {
	bookingID string
	status    string
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) BookingStatusChanged(b *db.Booking, c *db.Customer, status string) {
	f.sent = append(f.sent, notification{bookingID: b.ID, status: status})
}

type fakePayments struct {
	byID        map[string]*db.Payment
	byRequestID map[string]*db.Payment
	all         []entities.PaymentWithBooking
}

func newFakePayments() *fakePayments {
	return &fakePayments{
		byID:        map[string]*db.Payment{},
		byRequestID: map[string]*db.Payment{},
	}
}

func (f *fakePayments) Create(p *db.Payment) error {
	p.CreatedAt = time.Now()
	f.byID[p.ID] = p
	if p.HitpayPaymentRequestID != nil {
		f.byRequestID[*p.HitpayPaymentRequestID] = p
	}
	return nil
}

func (f *fakePayments) GetByID(id string) (*db.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePayments) ListByBooking(bookingID string) ([]db.Payment, error) {
	var out []db.Payment
	for _, p := range f.byID {
		if p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayments) ListAll() ([]entities.PaymentWithBooking, error) { return f.all, nil }

func (f *fakePayments) SetStatus(id, status string, paidAt *time.Time) error {
	p, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.Status = status
	if paidAt != nil {
		p.PaidAt = paidAt
	}
	return nil
}

func (f *fakePayments) MarkPaidByRequestID(requestID, hitpayPaymentID string, paidAt time.Time) (int64, error) {
	p, ok := f.byRequestID[requestID]
	if !ok {
		return 0, nil
	}
	p.Status = PaymentPaid
	if p.PaidAt == nil {
		p.PaidAt = &paidAt
	}
	p.HitpayPaymentID = &hitpayPaymentID
	return 1, nil
}

func (f *fakePayments) MarkFailedByRequestID(requestID string) (int64, error) {
	p, ok := f.byRequestID[requestID]
	if !ok {
		return 0, nil
	}
	p.Status = PaymentFailed
	return 1, nil
}

type fakeLeads struct {
	byID       map[string]*db.Lead
	listed     []entities.LeadResponse
	lastFilter repository.LeadFilter
}

func newFakeLeads(leads ...*db.Lead) *fakeLeads {
	f := &fakeLeads{byID: map[string]*db.Lead{}}
	for _, l := range leads {
		f.byID[l.ID] = l
	}
	return f
}

func (f *fakeLeads) Create(l *db.Lead) error {
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLeads) List(filter repository.LeadFilter) ([]entities.LeadResponse, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeLeads) UpdateStatus(id, status string) error {
	l, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	l.Status = status
	return nil
}

func (f *fakeLeads) Assign(id, userID string) error {
	l, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	l.AssignedTo = &userID
	return nil
}

type fakeGateway struct {
	session   *PaymentRequestSession
	err       error
	lastInput PaymentRequestInput
}

func (f *fakeGateway) CreatePaymentRequest(in PaymentRequestInput) (*PaymentRequestSession, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}
