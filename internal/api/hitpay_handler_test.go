package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kembara/internal/db"
	"kembara/internal/entities"
	"kembara/internal/repository"
	"kembara/internal/service"
)

type stubBookings struct {
	booking *db.Booking
}

func (s *stubBookings) Create(b *db.Booking) error { return nil }
func (s *stubBookings) GetByID(id string) (*db.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.booking, nil
}
func (s *stubBookings) List(repository.BookingFilter) ([]entities.BookingResponse, error) {
	return nil, nil
}
func (s *stubBookings) UpdateStatus(id, status string) error {
	if s.booking == nil || s.booking.ID != id {
		return sql.ErrNoRows
	}
	s.booking.Status = status
	return nil
}
func (s *stubBookings) UpdateStatusIf(id, from, to string) (bool, error) {
	if s.booking == nil || s.booking.ID != id || s.booking.Status != from {
		return false, nil
	}
	s.booking.Status = to
	return true, nil
}

type stubPayments struct {
	payment *db.Payment
}

func (s *stubPayments) Create(p *db.Payment) error              { return nil }
func (s *stubPayments) GetByID(id string) (*db.Payment, error)  { return nil, sql.ErrNoRows }
func (s *stubPayments) ListByBooking(string) ([]db.Payment, error) { return nil, nil }
func (s *stubPayments) ListAll() ([]entities.PaymentWithBooking, error) { return nil, nil }
func (s *stubPayments) SetStatus(string, string, *time.Time) error { return nil }
func (s *stubPayments) MarkPaidByRequestID(requestID, hitpayPaymentID string, paidAt time.Time) (int64, error) {
	if s.payment == nil || s.payment.HitpayPaymentRequestID == nil || *s.payment.HitpayPaymentRequestID != requestID {
		return 0, nil
	}
	s.payment.Status = "paid"
	if s.payment.PaidAt == nil {
		s.payment.PaidAt = &paidAt
	}
	s.payment.HitpayPaymentID = &hitpayPaymentID
	return 1, nil
}
func (s *stubPayments) MarkFailedByRequestID(requestID string) (int64, error) {
	if s.payment == nil || s.payment.HitpayPaymentRequestID == nil || *s.payment.HitpayPaymentRequestID != requestID {
		return 0, nil
	}
	s.payment.Status = "failed"
	return 1, nil
}

type stubCustomers struct{}

func (stubCustomers) CustomerByID(string) (*db.Customer, error)     { return nil, sql.ErrNoRows }
func (stubCustomers) CustomerIDsByEmail(string) ([]string, error)   { return nil, nil }
func (stubCustomers) ListCustomers() ([]db.Customer, error)         { return nil, nil }

func signWebhookForm(form url.Values, secret string) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+form.Get(k))
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookFixture(secret string) (*HitPayWebhookHandler, *stubPayments, *stubBookings) {
	requestID := "req-1"
	payments := &stubPayments{payment: &db.Payment{
		ID:                     "p1",
		BookingID:              "b1",
		Status:                 "pending",
		HitpayPaymentRequestID: &requestID,
	}}
	bookings := &stubBookings{booking: &db.Booking{ID: "b1", CustomerID: "c1", Status: "confirmed"}}
	svc := service.NewPaymentService(payments, bookings, stubCustomers{}, nil, nil, "https://app.kembara.my")
	return NewHitPayWebhookHandler(secret, svc), payments, bookings
}

func postWebhook(t *testing.T, handler *HitPayWebhookHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/hitpay", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleWebhook(rec, req)
	return rec
}

func completedForm(secret string) url.Values {
	form := url.Values{}
	form.Set("payment_id", "hp-pay-9")
	form.Set("payment_request_id", "req-1")
	form.Set("status", "completed")
	form.Set("reference_number", "b1")
	form.Set("hmac", signWebhookForm(form, secret))
	return form
}

func TestWebhookCompletedPayment(t *testing.T) {
	secret := "whsec_test"
	handler, payments, bookings := webhookFixture(secret)

	rec := postWebhook(t, handler, completedForm(secret))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "paid", payments.payment.Status)
	require.NotNil(t, payments.payment.PaidAt)
	require.Equal(t, "hp-pay-9", *payments.payment.HitpayPaymentID)
	require.Equal(t, "ongoing", bookings.booking.Status)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	secret := "whsec_test"
	handler, payments, bookings := webhookFixture(secret)
	form := completedForm(secret)

	require.Equal(t, http.StatusOK, postWebhook(t, handler, form).Code)
	firstPaidAt := *payments.payment.PaidAt

	require.Equal(t, http.StatusOK, postWebhook(t, handler, form).Code)
	require.Equal(t, firstPaidAt, *payments.payment.PaidAt)
	require.Equal(t, "ongoing", bookings.booking.Status)
}

func TestWebhookRejectsTamperedSignature(t *testing.T) {
	secret := "whsec_test"
	handler, payments, bookings := webhookFixture(secret)

	form := completedForm(secret)
	form.Set("reference_number", "b2") // mutation after signing

	rec := postWebhook(t, handler, form)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "pending", payments.payment.Status)
	require.Equal(t, "confirmed", bookings.booking.Status)
}

func TestWebhookFailedPayment(t *testing.T) {
	secret := "whsec_test"
	handler, payments, bookings := webhookFixture(secret)

	form := url.Values{}
	form.Set("payment_request_id", "req-1")
	form.Set("status", "failed")
	form.Set("reference_number", "b1")
	form.Set("hmac", signWebhookForm(form, secret))

	rec := postWebhook(t, handler, form)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "failed", payments.payment.Status)
	require.Equal(t, "confirmed", bookings.booking.Status)
}

func TestWebhookUnknownStatusAcknowledged(t *testing.T) {
	secret := "whsec_test"
	handler, payments, _ := webhookFixture(secret)

	form := url.Values{}
	form.Set("payment_request_id", "req-1")
	form.Set("status", "pending")
	form.Set("hmac", signWebhookForm(form, secret))

	rec := postWebhook(t, handler, form)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pending", payments.payment.Status)
}

func TestWebhookUnparseableBodyAcknowledged(t *testing.T) {
	handler, payments, bookings := webhookFixture("whsec_test")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/hitpay", strings.NewReader("%zz=broken"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleWebhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pending", payments.payment.Status)
	require.Equal(t, "confirmed", bookings.booking.Status)
}

func TestWebhookMissingSecret(t *testing.T) {
	handler, _, _ := webhookFixture("")

	rec := postWebhook(t, handler, completedForm("whsec_test"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
