package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"kembara/internal/entities"
	"kembara/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	payment, err := h.Service.RecordPayment(user, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"payment_id": payment.ID})
}

func (h *PaymentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	payments, err := h.Service.ListAll(user)
	if err != nil {
		respondError(w, err)
		return
	}
	if payments == nil {
		payments = []entities.PaymentWithBooking{}
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListByBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	payments, err := h.Service.ListByBooking(user, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	resp := make([]entities.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, entities.PaymentResponse{
			ID:          p.ID,
			BookingID:   p.BookingID,
			Amount:      p.Amount,
			Method:      p.Method,
			ReferenceNo: p.ReferenceNo,
			Notes:       p.Notes,
			Status:      p.Status,
			PaidAt:      p.PaidAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.UpdatePaymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.SetStatus(user, mux.Vars(r)["id"], req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Payment status updated"})
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	paymentURL, err := h.Service.CreateCheckout(user, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entities.CheckoutResponse{PaymentURL: paymentURL})
}
