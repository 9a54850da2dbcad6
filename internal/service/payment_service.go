package service

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"kembara/internal/auth"
	"kembara/internal/db"
	"kembara/internal/entities"
	apperrors "kembara/internal/errors"
)

type PaymentStore interface {
	Create(p *db.Payment) error
	GetByID(id string) (*db.Payment, error)
	ListByBooking(bookingID string) ([]db.Payment, error)
	ListAll() ([]entities.PaymentWithBooking, error)
	SetStatus(id, status string, paidAt *time.Time) error
	MarkPaidByRequestID(requestID, hitpayPaymentID string, paidAt time.Time) (int64, error)
	MarkFailedByRequestID(requestID string) (int64, error)
}

// PaymentGateway creates hosted checkout sessions with the payment
// provider.
type PaymentGateway interface {
	CreatePaymentRequest(in PaymentRequestInput) (*PaymentRequestSession, error)
}

type PaymentService struct {
	payments  PaymentStore
	bookings  BookingStore
	customers CustomerDirectory
	gateway   PaymentGateway
	notifier  Notifier
	appURL    string
}

func NewPaymentService(payments PaymentStore, bookings BookingStore, customers CustomerDirectory,
	gateway PaymentGateway, notifier Notifier, appURL string) *PaymentService {
	return &PaymentService{
		payments:  payments,
		bookings:  bookings,
		customers: customers,
		gateway:   gateway,
		notifier:  notifier,
		appURL:    appURL,
	}
}

// RecordPayment stores a manually-settled payment. Instant methods are
// paid the moment they are recorded and push the booking to ongoing in the
// same logical operation. The payment row is authoritative: a cascade
// failure is logged, never rolled back into the payment.
func (s *PaymentService) RecordPayment(user auth.User, req entities.RecordPaymentRequest) (*db.Payment, error) {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales:
	default:
		return nil, apperrors.Forbidden("only admin or sales can record payments")
	}
	if !IsInstantMethod(req.Method) {
		return nil, apperrors.BadRequest("online payments start from the hosted checkout")
	}

	booking, err := s.bookings.GetByID(req.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	payment := &db.Payment{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		Amount:      req.Amount,
		Method:      req.Method,
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
		Status:      PaymentPaid,
		PaidAt:      &now,
	}
	if err := s.payments.Create(payment); err != nil {
		log.Printf("Error recording payment: %v", err)
		return nil, apperrors.Internal("could not record payment")
	}

	s.cascade(booking.ID, PaymentPaid)
	return payment, nil
}

// CreateCheckout opens a hosted checkout for a confirmed booking and stores
// the pending payment row keyed by the provider's request id.
func (s *PaymentService) CreateCheckout(user auth.User, bookingID string) (string, error) {
	if user.Role != auth.RoleCustomer {
		return "", apperrors.Forbidden("only customers can pay online")
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NotFound("booking not found")
		}
		return "", err
	}

	ids, err := s.customers.CustomerIDsByEmail(user.Email)
	if err != nil {
		return "", err
	}
	owned := false
	for _, id := range ids {
		if id == booking.CustomerID {
			owned = true
			break
		}
	}
	if !owned {
		return "", apperrors.NotFound("booking not found")
	}

	if booking.Status != StatusConfirmed {
		return "", apperrors.BadRequest("booking must be confirmed before it can be paid")
	}

	customer, err := s.customers.CustomerByID(booking.CustomerID)
	if err != nil {
		return "", apperrors.NotFound("customer record not found")
	}

	input := PaymentRequestInput{
		Amount:          booking.TotalAmount,
		Currency:        "MYR",
		Name:            customer.Name,
		ReferenceNumber: booking.ID,
		RedirectURL:     s.appURL + "/dashboard/customer/bookings?payment=success",
		WebhookURL:      s.appURL + "/api/webhooks/hitpay",
	}
	if customer.Email != nil {
		input.Email = *customer.Email
	}
	if customer.Phone != nil {
		input.Phone = *customer.Phone
	}

	session, err := s.gateway.CreatePaymentRequest(input)
	if err != nil {
		return "", err
	}

	notes := "HitPay online payment"
	payment := &db.Payment{
		ID:                     uuid.NewString(),
		BookingID:              booking.ID,
		Amount:                 booking.TotalAmount,
		Method:                 MethodHitpay,
		Notes:                  &notes,
		Status:                 PaymentPending,
		HitpayPaymentRequestID: &session.ID,
	}
	if err := s.payments.Create(payment); err != nil {
		log.Printf("Error storing pending payment: %v", err)
		return "", apperrors.Internal("could not record payment")
	}

	return session.URL, nil
}

// SetStatus is the admin override on a payment. Paid stamps the timestamp
// and cascades to ongoing; refunded resets the booking to confirmed.
func (s *PaymentService) SetStatus(user auth.User, paymentID, status string) error {
	if user.Role != auth.RoleAdmin {
		return apperrors.Forbidden("only admin can update payment status")
	}

	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("payment not found")
		}
		return err
	}

	var paidAt *time.Time
	if status == PaymentPaid {
		now := time.Now().UTC()
		paidAt = &now
	}
	if err := s.payments.SetStatus(payment.ID, status, paidAt); err != nil {
		return err
	}

	s.cascade(payment.BookingID, status)
	return nil
}

// ListByBooking returns a booking's payments, customer reads scoped to
// their own bookings.
func (s *PaymentService) ListByBooking(user auth.User, bookingID string) ([]db.Payment, error) {
	switch user.Role {
	case auth.RoleAdmin, auth.RoleSales:
	case auth.RoleCustomer:
		booking, err := s.bookings.GetByID(bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("booking not found")
			}
			return nil, err
		}
		ids, err := s.customers.CustomerIDsByEmail(user.Email)
		if err != nil {
			return nil, err
		}
		owned := false
		for _, id := range ids {
			if id == booking.CustomerID {
				owned = true
				break
			}
		}
		if !owned {
			return nil, apperrors.NotFound("booking not found")
		}
	default:
		return nil, apperrors.Forbidden("not allowed to view payments")
	}
	return s.payments.ListByBooking(bookingID)
}

// ListAll is the admin payments overview with booking context attached.
func (s *PaymentService) ListAll(user auth.User) ([]entities.PaymentWithBooking, error) {
	if user.Role != auth.RoleAdmin {
		return nil, apperrors.Forbidden("only admin can view all payments")
	}
	return s.payments.ListAll()
}

// ReconcileCompleted applies a completed webhook notification: the payment
// goes paid (keeping its first paid_at on replays) and the booking cascades
// to ongoing. Safe under at-least-once delivery; an unmatched request id is
// a logged no-op.
func (s *PaymentService) ReconcileCompleted(paymentRequestID, hitpayPaymentID, bookingID string) error {
	n, err := s.payments.MarkPaidByRequestID(paymentRequestID, hitpayPaymentID, time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("Webhook: no payment matched request id %s", paymentRequestID)
		return nil
	}

	if err := s.bookings.UpdateStatus(bookingID, StatusOngoing); err != nil {
		log.Printf("Webhook: cascade to ongoing failed for booking %s: %v", bookingID, err)
	} else {
		s.notifyBookingStatus(bookingID, StatusOngoing)
	}
	return nil
}

// ReconcileFailed marks the matched payment failed. No booking cascade.
func (s *PaymentService) ReconcileFailed(paymentRequestID string) error {
	n, err := s.payments.MarkFailedByRequestID(paymentRequestID)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("Webhook: no payment matched request id %s", paymentRequestID)
	}
	return nil
}

// cascade pushes the booking to the status the payment event forces. Best
// effort: the payment record stays authoritative when the write fails.
func (s *PaymentService) cascade(bookingID, paymentStatus string) {
	target, ok := CascadeTarget(paymentStatus)
	if !ok {
		return
	}
	if err := s.bookings.UpdateStatus(bookingID, target); err != nil {
		log.Printf("Cascade to %s failed for booking %s: %v", target, bookingID, err)
		return
	}
	if target == StatusOngoing {
		s.notifyBookingStatus(bookingID, target)
	}
}

func (s *PaymentService) notifyBookingStatus(bookingID, status string) {
	if s.notifier == nil {
		return
	}
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return
	}
	customer, err := s.customers.CustomerByID(booking.CustomerID)
	if err != nil {
		return
	}
	s.notifier.BookingStatusChanged(booking, customer, status)
}
