package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"kembara/internal/entities"
	"kembara/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) PricingData(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	data, err := h.Service.PricingData(user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

func (h *BookingHandler) CalculateQuote(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	breakdown, err := h.Service.CalculateQuote(user, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entities.QuoteResponse{Breakdown: *breakdown})
}

func (h *BookingHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	customers, err := h.Service.ListCustomers(user)
	if err != nil {
		respondError(w, err)
		return
	}
	summaries := make([]entities.CustomerSummary, 0, len(customers))
	for _, c := range customers {
		summaries = append(summaries, entities.CustomerSummary{
			ID:    c.ID,
			Name:  c.Name,
			Phone: c.Phone,
			Email: c.Email,
		})
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.Service.Create(user, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"booking_id": booking.ID})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	date := r.URL.Query().Get("date")
	bookings, err := h.Service.List(user, status, date)
	if err != nil {
		respondError(w, err)
		return
	}
	if bookings == nil {
		bookings = []entities.BookingResponse{}
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	booking, err := h.Service.Get(user, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entities.BookingResponse{
		ID:              booking.ID,
		LeadID:          booking.LeadID,
		CustomerID:      booking.CustomerID,
		VehicleID:       booking.VehicleID,
		SalesID:         booking.SalesID,
		PickupDatetime:  booking.PickupDatetime,
		DropDatetime:    booking.DropDatetime,
		PickupLocation:  booking.PickupLocation,
		DropLocation:    booking.DropLocation,
		IsOneWay:        booking.IsOneWay,
		Days:            booking.Days,
		BaseRate:        booking.BaseRate,
		DiscountPercent: booking.DiscountPercent,
		DiscountAmount:  booking.DiscountAmount,
		OneWayFee:       booking.OneWayFee,
		HolidayUplift:   booking.HolidayUplift,
		Subtotal:        booking.Subtotal,
		SSTPercent:      booking.SSTPercent,
		SSTAmount:       booking.SSTAmount,
		TotalAmount:     booking.TotalAmount,
		Status:          booking.Status,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
	})
}

func (h *BookingHandler) MarkQuoted(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.MarkQuoted(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking quoted"})
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.Confirm(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking confirmed"})
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.Cancel(user, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.UpdateBookingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.SetStatus(user, mux.Vars(r)["id"], req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking status updated"})
}
