package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"kembara/internal/db"
)

// UserRepository covers both login accounts and the customer records they
// map to. A customer account may map to several customer rows; the link is
// the email address.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(
		`SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(u *db.User) error {
	return r.DB.QueryRow(
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.CreatedAt)
}

func (r *UserRepository) CreateCustomer(c *db.Customer) error {
	return r.DB.QueryRow(
		`INSERT INTO customers (id, name, phone, email) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		c.ID, c.Name, c.Phone, c.Email,
	).Scan(&c.CreatedAt)
}

func (r *UserRepository) CustomerByID(id string) (*db.Customer, error) {
	var c db.Customer
	err := r.DB.QueryRow(
		`SELECT id, name, phone, email, created_at FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}
	return &c, nil
}

// CustomerIDsByEmail resolves the customer rows a logged-in customer account
// owns. The result scopes booking and payment reads.
func (r *UserRepository) CustomerIDsByEmail(email string) ([]string, error) {
	rows, err := r.DB.Query(`SELECT id FROM customers WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("error querying customers by email: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning customer id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) ListCustomers() ([]db.Customer, error) {
	rows, err := r.DB.Query(`SELECT id, name, phone, email, created_at FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	var customers []db.Customer
	for rows.Next() {
		var c db.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
