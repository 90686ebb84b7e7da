package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"restaurant-pos/internal/domain"
)

func (h *Handlers) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if tables == nil {
		tables = []domain.TableView{}
	}
	writeJSON(w, http.StatusOK, tables)
}

// UpdateTable accepts staff transitions only: cleaning a table back to
// available, or flagging it for cleaning. Occupancy is derived from the
// order lifecycle and cannot be set by hand.
func (h *Handlers) UpdateTable(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	number := chi.URLParam(r, "number")

	var (
		t   *domain.Table
		err error
	)
	switch req.Status {
	case domain.TableAvailable:
		t, err = h.tables.MarkAvailable(r.Context(), number)
	case domain.TableNeedsCleaning:
		t, err = h.tables.MarkNeedsCleaning(r.Context(), number)
	default:
		err = fmt.Errorf("%w: staff cannot set table status %q", domain.ErrValidation, req.Status)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
