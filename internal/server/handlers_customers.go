package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-pos/internal/domain"
)

func (h *Handlers) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	c, err := h.loyalty.Register(r.Context(), req.Phone, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.loyalty.Lookup(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByPhone(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		respondError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
