package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"kembara/internal/auth"
	apperrors "kembara/internal/errors"
	"kembara/internal/pricing"
)

// CatalogAdminStore is the write side of the reference tables.
type CatalogAdminStore interface {
	CatalogStore
	CreateVehicle(v *pricing.Vehicle) error
	UpdateVehicle(v *pricing.Vehicle) error
	DeleteVehicle(id string) error
	CreatePriceRule(rule *pricing.PriceRule) error
	DeletePriceRule(id string) error
	CreateHoliday(h *pricing.Holiday) error
	DeleteHoliday(id string) error
	CreateOneWayFee(f *pricing.OneWayFee) error
	DeleteOneWayFee(id string) error
}

// AdminService maintains the pricing reference tables. Every operation is
// admin-only.
type AdminService struct {
	catalog CatalogAdminStore
}

func NewAdminService(catalog CatalogAdminStore) *AdminService {
	return &AdminService{catalog: catalog}
}

func (s *AdminService) requireAdmin(user auth.User) error {
	if user.Role != auth.RoleAdmin {
		return apperrors.Forbidden("admin only")
	}
	return nil
}

// ListVehicles returns the whole fleet, unavailable vehicles included.
func (s *AdminService) ListVehicles(user auth.User) ([]pricing.Vehicle, error) {
	if err := s.requireAdmin(user); err != nil {
		return nil, err
	}
	return s.catalog.Vehicles(false)
}

func (s *AdminService) CreateVehicle(user auth.User, v pricing.Vehicle) (*pricing.Vehicle, error) {
	if err := s.requireAdmin(user); err != nil {
		return nil, err
	}
	v.ID = uuid.NewString()
	if err := s.catalog.CreateVehicle(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *AdminService) UpdateVehicle(user auth.User, v pricing.Vehicle) error {
	if err := s.requireAdmin(user); err != nil {
		return err
	}
	if err := s.catalog.UpdateVehicle(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("vehicle not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) DeleteVehicle(user auth.User, id string) error {
	if err := s.requireAdmin(user); err != nil {
		return err
	}
	if err := s.catalog.DeleteVehicle(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("vehicle not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) CreatePriceRule(user auth.User, rule pricing.PriceRule) (*pricing.PriceRule, error) {
	if err := s.requireAdmin(user); err != nil {
		return nil, err
	}
	rule.ID = uuid.NewString()
	if err := s.catalog.CreatePriceRule(&rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *AdminService) DeletePriceRule(user auth.User, id string) error {
	if err := s.requireAdmin(user); err != nil {
		return err
	}
	if err := s.catalog.DeletePriceRule(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("price rule not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) CreateHoliday(user auth.User, h pricing.Holiday) (*pricing.Holiday, error) {
	if err := s.requireAdmin(user); err != nil {
		return nil, err
	}
	h.ID = uuid.NewString()
	if err := s.catalog.CreateHoliday(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *AdminService) DeleteHoliday(user auth.User, id string) error {
	if err := s.requireAdmin(user); err != nil {
		return err
	}
	if err := s.catalog.DeleteHoliday(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("holiday not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) CreateOneWayFee(user auth.User, f pricing.OneWayFee) (*pricing.OneWayFee, error) {
	if err := s.requireAdmin(user); err != nil {
		return nil, err
	}
	f.ID = uuid.NewString()
	if err := s.catalog.CreateOneWayFee(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *AdminService) DeleteOneWayFee(user auth.User, id string) error {
	if err := s.requireAdmin(user); err != nil {
		return err
	}
	if err := s.catalog.DeleteOneWayFee(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("one-way fee not found")
		}
		return err
	}
	return nil
}
