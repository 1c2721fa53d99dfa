package web

import (
	"net/http"

	"github.com/dtanque/shirt-orders/internal/platform/httpx"
)

// Route paths served by the orders HTTP surface.
const (
	SubmitPath       = "/submit"
	ExportPath       = "/admin/orders.csv"
	RecentOrdersPath = "/admin/orders/recent"
)

// NewMux wires the order endpoints onto a fresh ServeMux.
func NewMux(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(SubmitPath, httpx.Chain(
		http.HandlerFunc(h.handleSubmit),
		httpx.RequireMethod(http.MethodPost),
	))
	mux.Handle(ExportPath, httpx.Chain(
		http.HandlerFunc(h.handleExportLedger),
		httpx.RequireMethod(http.MethodGet),
	))
	mux.Handle(RecentOrdersPath, httpx.Chain(
		http.HandlerFunc(h.handleRecentOrders),
		httpx.RequireMethod(http.MethodGet),
	))
	return mux
}
