// Package web exposes the order intake HTTP endpoints: submission, ledger
// export, and the admin recent-orders view.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtanque/shirt-orders/internal/orders/domain"
	"github.com/dtanque/shirt-orders/internal/platform/httpx"
)

const tracerName = "github.com/dtanque/shirt-orders/internal/orders/api/web"

// Submitter runs one order submission end to end.
type Submitter interface {
	Submit(ctx context.Context, sub domain.Submission) (domain.Result, error)
}

// OrderLister serves the admin recent-orders view.
type OrderLister interface {
	ListRecentOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error)
}

// Handlers bundles the HTTP endpoints over the intake service.
type Handlers struct {
	submitter  Submitter
	lister     OrderLister
	ledgerPath string
}

// NewHandlers builds the endpoint set. lister may be nil when no order index
// is configured.
func NewHandlers(submitter Submitter, lister OrderLister, ledgerPath string) Handlers {
	return Handlers{
		submitter:  submitter,
		lister:     lister,
		ledgerPath: ledgerPath,
	}
}

func (h Handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "orders.submit")
	defer span.End()

	fields, err := submissionFields(r)
	if err != nil {
		span.RecordError(err)
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.submitter.Submit(ctx, domain.ParseSubmission(fields))
	if err != nil {
		span.RecordError(err)
		status := httpx.ErrorStatus(err)
		if status == http.StatusInternalServerError {
			// Internal detail stays in the log, never in the response.
			log.Printf("submit order: %v", err)
			_ = httpx.WriteJSONError(w, status, "server error")
			return
		}
		_ = httpx.WriteJSONError(w, status, err.Error())
		return
	}

	span.SetAttributes(attribute.Int("order.amount", result.Amount))
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"amount":      result.Amount,
		"paymentLink": result.PaymentLink,
	})
}

func (h Handlers) handleExportLedger(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, h.ledgerPath)
}

type orderView struct {
	CreatedAt      string `json:"createdAt"`
	PlayerName     string `json:"playerName"`
	TeamName       string `json:"teamName"`
	Email          string `json:"email"`
	ShirtSize      string `json:"shirtSize"`
	PlayerLines    int    `json:"playerLines"`
	BusinessDesign bool   `json:"businessDesign"`
	BusinessLines  int    `json:"businessLines"`
	TotalAmount    int    `json:"totalAmount"`
}

func (h Handlers) handleRecentOrders(w http.ResponseWriter, r *http.Request) {
	if h.lister == nil {
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "order index is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	summaries, err := h.lister.ListRecentOrders(r.Context(), limit)
	if err != nil {
		log.Printf("list recent orders: %v", err)
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "server error")
		return
	}

	views := make([]orderView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, orderView{
			CreatedAt:      summary.CreatedAt.UTC().Format(time.RFC3339),
			PlayerName:     summary.PlayerName,
			TeamName:       summary.TeamName,
			Email:          summary.Email,
			ShirtSize:      summary.ShirtSize,
			PlayerLines:    summary.PlayerLines,
			BusinessDesign: summary.BusinessDesign,
			BusinessLines:  summary.BusinessLines,
			TotalAmount:    summary.TotalAmount,
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": views})
}

// submissionFields flattens a form-encoded or JSON request body into the
// field map the domain parser expects.
func submissionFields(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		fields := make(map[string]string, len(payload))
		for key, value := range payload {
			fields[key] = stringifyField(value)
		}
		return fields, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}

func stringifyField(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}
