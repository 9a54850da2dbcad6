package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"kembara/internal/entities"
	"kembara/internal/pricing"
	"kembara/internal/service"
)

// AdminHandler maintains the pricing reference tables.
type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	vehicles, err := h.Service.ListVehicles(user)
	if err != nil {
		respondError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []pricing.Vehicle{}
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *AdminHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vehicle, err := h.Service.CreateVehicle(user, vehicleFromRequest(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *AdminHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vehicle := vehicleFromRequest(req)
	vehicle.ID = mux.Vars(r)["id"]
	if err := h.Service.UpdateVehicle(user, vehicle); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
}

func (h *AdminHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteVehicle(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

func (h *AdminHandler) CreatePriceRule(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.PriceRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	rule, err := h.Service.CreatePriceRule(user, pricing.PriceRule{
		MinDays:         req.MinDays,
		MaxDays:         req.MaxDays,
		DiscountPercent: req.DiscountPercent,
		Label:           req.Label,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

func (h *AdminHandler) DeletePriceRule(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeletePriceRule(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Price rule deleted"})
}

func (h *AdminHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.HolidayRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	holiday, err := h.Service.CreateHoliday(user, pricing.Holiday{
		Name:          req.Name,
		Date:          req.Date,
		UpliftPercent: req.UpliftPercent,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, holiday)
}

func (h *AdminHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteHoliday(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Holiday deleted"})
}

func (h *AdminHandler) CreateOneWayFee(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.OneWayFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	fee, err := h.Service.CreateOneWayFee(user, pricing.OneWayFee{
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Fee:          req.Fee,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, fee)
}

func (h *AdminHandler) DeleteOneWayFee(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteOneWayFee(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "One-way fee deleted"})
}

func vehicleFromRequest(req entities.VehicleRequest) pricing.Vehicle {
	return pricing.Vehicle{
		Name:         req.Name,
		Model:        req.Model,
		GroupType:    req.GroupType,
		Seats:        req.Seats,
		Luggage:      req.Luggage,
		Transmission: req.Transmission,
		BaseRate:     req.BaseRate,
		Status:       req.Status,
		OwnerType:    req.OwnerType,
		Branch:       req.Branch,
	}
}
