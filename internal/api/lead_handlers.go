package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"kembara/internal/entities"
	"kembara/internal/service"
)

type LeadHandler struct {
	Service *service.LeadService
}

func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{Service: svc}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.CreateLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	lead, err := h.Service.Create(user, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"lead_id": lead.ID})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	leads, err := h.Service.List(user)
	if err != nil {
		respondError(w, err)
		return
	}
	if leads == nil {
		leads = []entities.LeadResponse{}
	}
	respondJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.UpdateLeadStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.SetStatus(user, mux.Vars(r)["id"], req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lead status updated"})
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}
	var req entities.AssignLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Service.Assign(user, mux.Vars(r)["id"], req.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lead assigned"})
}
