package service

import (
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kembara/internal/auth"
	"kembara/internal/db"
	"kembara/internal/entities"
	apperrors "kembara/internal/errors"
)

type UserStore interface {
	GetByEmail(email string) (*db.User, error)
	Create(u *db.User) error
	CreateCustomer(c *db.Customer) error
}

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

// Login checks the credentials and issues a role-carrying token. Wrong
// email and wrong password answer identically.
func (s *AuthService) Login(email, password string) (*entities.LoginResponse, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, apperrors.Internal("could not issue token")
	}
	return &entities.LoginResponse{Token: signed, Role: user.Role}, nil
}

// RegisterCustomer self-signup: a customer login account plus the customer
// record its email links to.
func (s *AuthService) RegisterCustomer(req entities.RegisterRequest) error {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.BadRequest("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("could not register")
	}

	user := &db.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         auth.RoleCustomer,
	}
	if err := s.users.Create(user); err != nil {
		log.Printf("Error creating user: %v", err)
		return apperrors.Internal("could not register")
	}

	email := req.Email
	customer := &db.Customer{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: &email,
	}
	if req.Phone != "" {
		phone := req.Phone
		customer.Phone = &phone
	}
	if err := s.users.CreateCustomer(customer); err != nil {
		log.Printf("Error creating customer record: %v", err)
		return apperrors.Internal("could not register")
	}
	return nil
}

// CreateStaff lets an admin add sales/agent/admin accounts.
func (s *AuthService) CreateStaff(actor auth.User, req entities.CreateStaffRequest) error {
	if actor.Role != auth.RoleAdmin {
		return apperrors.Forbidden("only admin can create staff accounts")
	}

	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.BadRequest("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("could not create account")
	}
	user := &db.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.users.Create(user); err != nil {
		log.Printf("Error creating staff user: %v", err)
		return apperrors.Internal("could not create account")
	}
	return nil
}
