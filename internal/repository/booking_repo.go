package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"kembara/internal/db"
	"kembara/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// BookingFilter narrows List to the caller's visibility: sales/agent see
// their own rows, customers the bookings of their customer records.
type BookingFilter struct {
	SalesID     string
	CustomerIDs []string
	Status      string
	Date        string
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
	INSERT INTO bookings
	(id, lead_id, customer_id, vehicle_id, sales_id, pickup_datetime, drop_datetime,
	 pickup_location, drop_location, is_one_way, days, base_rate, discount_percent,
	 discount_amount, one_way_fee, holiday_uplift, subtotal, sst_percent, sst_amount,
	 total_amount, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	RETURNING created_at, updated_at`
	return r.DB.QueryRow(query,
		b.ID, b.LeadID, b.CustomerID, b.VehicleID, b.SalesID,
		b.PickupDatetime, b.DropDatetime, b.PickupLocation, b.DropLocation,
		b.IsOneWay, b.Days, b.BaseRate, b.DiscountPercent, b.DiscountAmount,
		b.OneWayFee, b.HolidayUplift, b.Subtotal, b.SSTPercent, b.SSTAmount,
		b.TotalAmount, b.Status, b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(id string) (*db.Booking, error) {
	var b db.Booking
	query := `
	SELECT id, lead_id, customer_id, vehicle_id, sales_id, pickup_datetime, drop_datetime,
	       pickup_location, drop_location, is_one_way, days, base_rate, discount_percent,
	       discount_amount, one_way_fee, holiday_uplift, subtotal, sst_percent, sst_amount,
	       total_amount, status, notes, created_at, updated_at
	FROM bookings WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.LeadID, &b.CustomerID, &b.VehicleID, &b.SalesID,
		&b.PickupDatetime, &b.DropDatetime, &b.PickupLocation, &b.DropLocation,
		&b.IsOneWay, &b.Days, &b.BaseRate, &b.DiscountPercent, &b.DiscountAmount,
		&b.OneWayFee, &b.HolidayUplift, &b.Subtotal, &b.SSTPercent, &b.SSTAmount,
		&b.TotalAmount, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) List(filter BookingFilter) ([]entities.BookingResponse, error) {
	query := `
	SELECT
		b.id, b.lead_id, b.customer_id, b.vehicle_id, b.sales_id,
		b.pickup_datetime, b.drop_datetime, b.pickup_location, b.drop_location,
		b.is_one_way, b.days, b.base_rate, b.discount_percent, b.discount_amount,
		b.one_way_fee, b.holiday_uplift, b.subtotal, b.sst_percent, b.sst_amount,
		b.total_amount, b.status, b.notes, b.created_at,
		c.id, c.name, c.phone, c.email,
		v.id, v.name, v.model, v.group_type
	FROM bookings b
	LEFT JOIN customers c ON c.id = b.customer_id
	LEFT JOIN vehicles v ON v.id = b.vehicle_id
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.SalesID != "" {
		query += " AND b.sales_id = $" + strconv.Itoa(idx)
		args = append(args, filter.SalesID)
		idx++
	}
	if filter.CustomerIDs != nil {
		query += " AND b.customer_id = ANY($" + strconv.Itoa(idx) + ")"
		args = append(args, pq.Array(filter.CustomerIDs))
		idx++
	}
	if filter.Status != "" {
		query += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.Date != "" {
		query += " AND DATE(b.pickup_datetime) = $" + strconv.Itoa(idx)
		args = append(args, filter.Date)
		idx++
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		var custID, custName, vehID, vehName, vehModel, vehGroup sql.NullString
		var custPhone, custEmail sql.NullString
		err := rows.Scan(
			&b.ID, &b.LeadID, &b.CustomerID, &b.VehicleID, &b.SalesID,
			&b.PickupDatetime, &b.DropDatetime, &b.PickupLocation, &b.DropLocation,
			&b.IsOneWay, &b.Days, &b.BaseRate, &b.DiscountPercent, &b.DiscountAmount,
			&b.OneWayFee, &b.HolidayUplift, &b.Subtotal, &b.SSTPercent, &b.SSTAmount,
			&b.TotalAmount, &b.Status, &b.Notes, &b.CreatedAt,
			&custID, &custName, &custPhone, &custEmail,
			&vehID, &vehName, &vehModel, &vehGroup,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		if custID.Valid {
			b.Customer = &entities.CustomerSummary{
				ID:    custID.String,
				Name:  custName.String,
				Phone: nullableString(custPhone),
				Email: nullableString(custEmail),
			}
		}
		if vehID.Valid {
			b.Vehicle = &entities.VehicleSummary{
				ID:        vehID.String,
				Name:      vehName.String,
				Model:     vehModel.String,
				GroupType: vehGroup.String,
			}
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus writes an absolute status by id, regardless of the current
// value. Cascade targets are idempotent so replays and races converge.
func (r *BookingRepository) UpdateStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return requireRow(result)
}

// UpdateStatusIf transitions the booking only when its current status is
// the expected one. Returns false when the guard did not match.
func (r *BookingRepository) UpdateStatusIf(id, from, to string) (bool, error) {
	result, err := r.DB.Exec(
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, fmt.Errorf("error updating booking status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
