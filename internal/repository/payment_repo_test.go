package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"kembara/internal/db"
)

func TestPaymentRepositoryCreate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewPaymentRepository(mockDB)
	now := time.Now()
	requestID := "req-1"

	payment := &db.Payment{
		ID:                     "p1",
		BookingID:              "b1",
		Amount:                 291.6,
		Method:                 "hitpay",
		Status:                 "pending",
		HitpayPaymentRequestID: &requestID,
	}

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(
			payment.ID, payment.BookingID, payment.Amount, payment.Method,
			nil, nil, payment.Status, nil, requestID, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	require.NoError(t, repo.Create(payment))
	require.Equal(t, now, payment.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryMarkPaidByRequestID(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewPaymentRepository(mockDB)
	paidAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("SET status = 'paid', paid_at = COALESCE(paid_at, $1), hitpay_payment_id = $2")).
		WithArgs(paidAt, "hp-pay-9", "req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkPaidByRequestID("req-1", "hp-pay-9", paidAt)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	// Unknown request id affects no rows, which is not an error.
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'paid', paid_at = COALESCE(paid_at, $1), hitpay_payment_id = $2")).
		WithArgs(paidAt, "hp-pay-9", "unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err = repo.MarkPaidByRequestID("unknown", "hp-pay-9", paidAt)
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryMarkFailedByRequestID(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewPaymentRepository(mockDB)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = 'failed' WHERE hitpay_payment_request_id = $1")).
		WithArgs("req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkFailedByRequestID("req-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositorySetStatus(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewPaymentRepository(mockDB)
	paidAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = $1, paid_at = $2 WHERE id = $3")).
		WithArgs("paid", &paidAt, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus("p1", "paid", &paidAt))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET status = $1 WHERE id = $2")).
		WithArgs("refunded", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus("p1", "refunded", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListByBooking(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewPaymentRepository(mockDB)
	now := time.Now()

	columns := []string{
		"id", "booking_id", "amount", "method", "reference_no", "notes",
		"status", "paid_at", "hitpay_payment_request_id", "hitpay_payment_id", "created_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow("p1", "b1", 291.6, "cash", "RCPT-1", nil, "paid", now, nil, nil, now).
		AddRow("p2", "b1", 50.0, "hitpay", nil, nil, "pending", nil, "req-1", nil, now)

	mock.ExpectQuery("SELECT (.+) FROM payments WHERE booking_id").
		WithArgs("b1").
		WillReturnRows(rows)

	got, err := repo.ListByBooking("b1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "RCPT-1", *got[0].ReferenceNo)
	require.NotNil(t, got[0].PaidAt)
	require.Nil(t, got[1].PaidAt)
	require.Equal(t, "req-1", *got[1].HitpayPaymentRequestID)
	require.NoError(t, mock.ExpectationsWereMet())
}
