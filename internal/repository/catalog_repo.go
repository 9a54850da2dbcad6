package repository

import (
	"database/sql"
	"fmt"

	"kembara/internal/pricing"
)

// CatalogRepository serves the pricing reference tables: vehicles, duration
// discount rules, holidays and one-way fees.
type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) Vehicles(onlyAvailable bool) ([]pricing.Vehicle, error) {
	query := `
	SELECT id, name, model, group_type, seats, luggage, transmission, base_rate, status, owner_type, branch
	FROM vehicles`
	if onlyAvailable {
		query += ` WHERE status = 'available'`
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []pricing.Vehicle
	for rows.Next() {
		var v pricing.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Model, &v.GroupType, &v.Seats, &v.Luggage,
			&v.Transmission, &v.BaseRate, &v.Status, &v.OwnerType, &v.Branch); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// PriceRules returns the discount brackets ordered by min_days; the
// resolver relies on that order for its first-match scan.
func (r *CatalogRepository) PriceRules() ([]pricing.PriceRule, error) {
	rows, err := r.DB.Query(`SELECT id, min_days, max_days, discount_percent, label FROM price_rules ORDER BY min_days`)
	if err != nil {
		return nil, fmt.Errorf("error querying price rules: %w", err)
	}
	defer rows.Close()

	var rules []pricing.PriceRule
	for rows.Next() {
		var rule pricing.PriceRule
		if err := rows.Scan(&rule.ID, &rule.MinDays, &rule.MaxDays, &rule.DiscountPercent, &rule.Label); err != nil {
			return nil, fmt.Errorf("error scanning price rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *CatalogRepository) Holidays() ([]pricing.Holiday, error) {
	rows, err := r.DB.Query(`SELECT id, name, to_char(date, 'YYYY-MM-DD'), uplift_percent FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("error querying holidays: %w", err)
	}
	defer rows.Close()

	var holidays []pricing.Holiday
	for rows.Next() {
		var h pricing.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.UpliftPercent); err != nil {
			return nil, fmt.Errorf("error scanning holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *CatalogRepository) OneWayFees() ([]pricing.OneWayFee, error) {
	rows, err := r.DB.Query(`SELECT id, from_location, to_location, fee FROM one_way_fees`)
	if err != nil {
		return nil, fmt.Errorf("error querying one-way fees: %w", err)
	}
	defer rows.Close()

	var fees []pricing.OneWayFee
	for rows.Next() {
		var f pricing.OneWayFee
		if err := rows.Scan(&f.ID, &f.FromLocation, &f.ToLocation, &f.Fee); err != nil {
			return nil, fmt.Errorf("error scanning one-way fee: %w", err)
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

func (r *CatalogRepository) CreateVehicle(v *pricing.Vehicle) error {
	query := `
	INSERT INTO vehicles (id, name, model, group_type, seats, luggage, transmission, base_rate, status, owner_type, branch)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.Exec(query, v.ID, v.Name, v.Model, v.GroupType, v.Seats, v.Luggage,
		v.Transmission, v.BaseRate, v.Status, v.OwnerType, v.Branch)
	return err
}

func (r *CatalogRepository) UpdateVehicle(v *pricing.Vehicle) error {
	query := `
	UPDATE vehicles
	SET name = $2, model = $3, group_type = $4, seats = $5, luggage = $6,
	    transmission = $7, base_rate = $8, status = $9, owner_type = $10, branch = $11
	WHERE id = $1`
	result, err := r.DB.Exec(query, v.ID, v.Name, v.Model, v.GroupType, v.Seats, v.Luggage,
		v.Transmission, v.BaseRate, v.Status, v.OwnerType, v.Branch)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *CatalogRepository) DeleteVehicle(id string) error {
	result, err := r.DB.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *CatalogRepository) CreatePriceRule(rule *pricing.PriceRule) error {
	_, err := r.DB.Exec(`INSERT INTO price_rules (id, min_days, max_days, discount_percent, label) VALUES ($1, $2, $3, $4, $5)`,
		rule.ID, rule.MinDays, rule.MaxDays, rule.DiscountPercent, rule.Label)
	return err
}

func (r *CatalogRepository) DeletePriceRule(id string) error {
	result, err := r.DB.Exec(`DELETE FROM price_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *CatalogRepository) CreateHoliday(h *pricing.Holiday) error {
	_, err := r.DB.Exec(`INSERT INTO holidays (id, name, date, uplift_percent) VALUES ($1, $2, $3, $4)`,
		h.ID, h.Name, h.Date, h.UpliftPercent)
	return err
}

func (r *CatalogRepository) DeleteHoliday(id string) error {
	result, err := r.DB.Exec(`DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *CatalogRepository) CreateOneWayFee(f *pricing.OneWayFee) error {
	_, err := r.DB.Exec(`INSERT INTO one_way_fees (id, from_location, to_location, fee) VALUES ($1, $2, $3, $4)`,
		f.ID, f.FromLocation, f.ToLocation, f.Fee)
	return err
}

func (r *CatalogRepository) DeleteOneWayFee(id string) error {
	result, err := r.DB.Exec(`DELETE FROM one_way_fees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
