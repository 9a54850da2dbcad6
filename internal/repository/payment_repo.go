package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kembara/internal/db"
	"kembara/internal/entities"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

func (r *PaymentRepository) Create(p *db.Payment) error {
	query := `
	INSERT INTO payments
	(id, booking_id, amount, method, reference_no, notes, status, paid_at, hitpay_payment_request_id, hitpay_payment_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at`
	return r.DB.QueryRow(query,
		p.ID, p.BookingID, p.Amount, p.Method, p.ReferenceNo, p.Notes,
		p.Status, p.PaidAt, p.HitpayPaymentRequestID, p.HitpayPaymentID,
	).Scan(&p.CreatedAt)
}

func (r *PaymentRepository) GetByID(id string) (*db.Payment, error) {
	var p db.Payment
	query := `
	SELECT id, booking_id, amount, method, reference_no, notes, status, paid_at,
	       hitpay_payment_request_id, hitpay_payment_id, created_at
	FROM payments WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.ReferenceNo, &p.Notes,
		&p.Status, &p.PaidAt, &p.HitpayPaymentRequestID, &p.HitpayPaymentID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBooking(bookingID string) ([]db.Payment, error) {
	query := `
	SELECT id, booking_id, amount, method, reference_no, notes, status, paid_at,
	       hitpay_payment_request_id, hitpay_payment_id, created_at
	FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	var payments []db.Payment
	for rows.Next() {
		var p db.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.ReferenceNo, &p.Notes,
			&p.Status, &p.PaidAt, &p.HitpayPaymentRequestID, &p.HitpayPaymentID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListAll returns every payment with its booking, customer and vehicle
// summaries attached. Admin-only view.
func (r *PaymentRepository) ListAll() ([]entities.PaymentWithBooking, error) {
	query := `
	SELECT
		p.id, p.booking_id, p.amount, p.method, p.reference_no, p.notes, p.status, p.paid_at, p.created_at,
		b.id, b.pickup_datetime, b.drop_datetime, b.pickup_location, b.drop_location, b.total_amount, b.status,
		c.id, c.name, c.phone, c.email,
		v.id, v.name, v.model, v.group_type
	FROM payments p
	LEFT JOIN bookings b ON b.id = p.booking_id
	LEFT JOIN customers c ON c.id = b.customer_id
	LEFT JOIN vehicles v ON v.id = b.vehicle_id
	ORDER BY p.created_at DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	var payments []entities.PaymentWithBooking
	for rows.Next() {
		var p entities.PaymentWithBooking
		var bID, bPickupLoc, bDropLoc, bStatus sql.NullString
		var bPickup, bDrop sql.NullTime
		var bTotal sql.NullFloat64
		var custID, custName, custPhone, custEmail sql.NullString
		var vehID, vehName, vehModel, vehGroup sql.NullString
		err := rows.Scan(
			&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.ReferenceNo, &p.Notes, &p.Status, &p.PaidAt, &p.CreatedAt,
			&bID, &bPickup, &bDrop, &bPickupLoc, &bDropLoc, &bTotal, &bStatus,
			&custID, &custName, &custPhone, &custEmail,
			&vehID, &vehName, &vehModel, &vehGroup,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		if bID.Valid {
			booking := &entities.BookingSummary{
				ID:             bID.String,
				PickupDatetime: bPickup.Time,
				DropDatetime:   bDrop.Time,
				PickupLocation: bPickupLoc.String,
				DropLocation:   bDropLoc.String,
				TotalAmount:    bTotal.Float64,
				Status:         bStatus.String,
			}
			if custID.Valid {
				booking.Customer = &entities.CustomerSummary{
					ID:    custID.String,
					Name:  custName.String,
					Phone: nullableString(custPhone),
					Email: nullableString(custEmail),
				}
			}
			if vehID.Valid {
				booking.Vehicle = &entities.VehicleSummary{
					ID:        vehID.String,
					Name:      vehName.String,
					Model:     vehModel.String,
					GroupType: vehGroup.String,
				}
			}
			p.Booking = booking
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) SetStatus(id, status string, paidAt *time.Time) error {
	var result sql.Result
	var err error
	if paidAt != nil {
		result, err = r.DB.Exec(`UPDATE payments SET status = $1, paid_at = $2 WHERE id = $3`, status, paidAt, id)
	} else {
		result, err = r.DB.Exec(`UPDATE payments SET status = $1 WHERE id = $2`, status, id)
	}
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	return requireRow(result)
}

// MarkPaidByRequestID settles the payment matched by the provider's
// payment-request id. COALESCE keeps the first paid_at on webhook replays
// so reprocessing the same notification never rewrites the timestamp.
func (r *PaymentRepository) MarkPaidByRequestID(requestID, hitpayPaymentID string, paidAt time.Time) (int64, error) {
	result, err := r.DB.Exec(`
	UPDATE payments
	SET status = 'paid', paid_at = COALESCE(paid_at, $1), hitpay_payment_id = $2
	WHERE hitpay_payment_request_id = $3`,
		paidAt, hitpayPaymentID, requestID)
	if err != nil {
		return 0, fmt.Errorf("error marking payment paid: %w", err)
	}
	return result.RowsAffected()
}

func (r *PaymentRepository) MarkFailedByRequestID(requestID string) (int64, error) {
	result, err := r.DB.Exec(
		`UPDATE payments SET status = 'failed' WHERE hitpay_payment_request_id = $1`, requestID)
	if err != nil {
		return 0, fmt.Errorf("error marking payment failed: %w", err)
	}
	return result.RowsAffected()
}
