package repository

import (
	"database/sql"
	"fmt"

	"kembara/internal/db"
	"kembara/internal/entities"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(database *sql.DB) *LeadRepository {
	return &LeadRepository{DB: database}
}

// LeadFilter narrows List to leads assigned to one staff member.
type LeadFilter struct {
	AssignedTo string
}

func (r *LeadRepository) Create(l *db.Lead) error {
	query := `
	INSERT INTO leads (id, customer_id, source, status, assigned_to, notes, pickup_date, drop_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at`
	return r.DB.QueryRow(query,
		l.ID, l.CustomerID, l.Source, l.Status, l.AssignedTo, l.Notes, l.PickupDate, l.DropDate,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (r *LeadRepository) List(filter LeadFilter) ([]entities.LeadResponse, error) {
	query := `
	SELECT
		l.id, l.status, l.source, l.notes,
		to_char(l.pickup_date, 'YYYY-MM-DD'), to_char(l.drop_date, 'YYYY-MM-DD'),
		l.assigned_to, l.created_at, l.updated_at,
		c.id, c.name, c.phone, c.email
	FROM leads l
	LEFT JOIN customers c ON c.id = l.customer_id`
	args := []interface{}{}
	if filter.AssignedTo != "" {
		query += ` WHERE l.assigned_to = $1`
		args = append(args, filter.AssignedTo)
	}
	query += ` ORDER BY l.created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying leads: %w", err)
	}
	defer rows.Close()

	var leads []entities.LeadResponse
	for rows.Next() {
		var l entities.LeadResponse
		var pickupDate, dropDate sql.NullString
		var custID, custName, custPhone, custEmail sql.NullString
		err := rows.Scan(
			&l.ID, &l.Status, &l.Source, &l.Notes,
			&pickupDate, &dropDate,
			&l.AssignedTo, &l.CreatedAt, &l.UpdatedAt,
			&custID, &custName, &custPhone, &custEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning lead row: %w", err)
		}
		l.PickupDate = nullableString(pickupDate)
		l.DropDate = nullableString(dropDate)
		if custID.Valid {
			l.Customer = &entities.CustomerSummary{
				ID:    custID.String,
				Name:  custName.String,
				Phone: nullableString(custPhone),
				Email: nullableString(custEmail),
			}
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(id, status string) error {
	result, err := r.DB.Exec(
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating lead status: %w", err)
	}
	return requireRow(result)
}

func (r *LeadRepository) Assign(id, userID string) error {
	result, err := r.DB.Exec(
		`UPDATE leads SET assigned_to = $1, updated_at = NOW() WHERE id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("error assigning lead: %w", err)
	}
	return requireRow(result)
}
