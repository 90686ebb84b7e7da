package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/notifier"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/service/loyalty"
	"restaurant-pos/internal/service/order"
	"restaurant-pos/internal/service/table"
)

type Handlers struct {
	orders  order.Lifecycle
	tables  table.Registry
	loyalty loyalty.Ledger
	menu    repository.MenuRepository
	hub     *notifier.Hub
	lg      *logger.Logger
}

func NewHandlers(
	orders order.Lifecycle,
	tables table.Registry,
	ledger loyalty.Ledger,
	menu repository.MenuRepository,
	hub *notifier.Hub,
	lg *logger.Logger,
) *Handlers {
	return &Handlers{orders: orders, tables: tables, loyalty: ledger, menu: menu, hub: hub, lg: lg}
}

func Router(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/menu", h.ListMenu)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/{number}", h.GetOrder)
		r.Put("/{number}/status", h.UpdateOrderStatus)
	})

	r.Post("/payments", h.RecordPayment)

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.ListTables)
		r.Put("/{number}", h.UpdateTable)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.RegisterCustomer)
		r.Get("/{phone}", h.GetCustomer)
		r.Get("/{phone}/orders", h.ListCustomerOrders)
	})

	r.Get("/events", h.StreamEvents)

	return r
}
