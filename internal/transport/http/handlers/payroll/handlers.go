package payrollhandler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/export"
	"schooladmin/internal/platform/metrics"
	"schooladmin/internal/transport/http/api"
	"schooladmin/internal/transport/http/middleware"
	"schooladmin/internal/transport/http/shared"
)

type Handler struct {
	Renderer *export.Renderer
	Title    string
	Metrics  *metrics.Collector
}

func NewHandler(renderer *export.Renderer, title string, collector *metrics.Collector) *Handler {
	return &Handler{Renderer: renderer, Title: title, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Post("/bonus", h.handleSetBonus)
		r.Get("/export.csv", h.handleExportCSV)
		r.Get("/report.pdf", h.handleReportPDF)
	})
}

type snapshotResponse struct {
	Rows    []payroll.Row   `json:"rows"`
	Summary payroll.Summary `json:"summary"`
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}
	rows, summary, err := s.Payroll()
	if err != nil {
		failPayroll(w, err, requestID)
		return
	}
	api.Success(w, snapshotResponse{Rows: rows, Summary: summary}, requestID)
}

// handleSetBonus accepts {"bonus": 250} or {"bonus": "250,5"}. Invalid amounts
// are a validation error so the client can ask again.
func (h *Handler) handleSetBonus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}

	var payload struct {
		Bonus any `json:"bonus"`
	}
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	bonus, err := parseBonus(payload.Bonus)
	if err == nil {
		var rows []payroll.Row
		var summary payroll.Summary
		rows, summary, err = s.SetBonus(bonus)
		if err == nil {
			slog.Info("payroll bonus set", "sessionId", s.ID, "bonus", bonus)
			api.Success(w, snapshotResponse{Rows: rows, Summary: summary}, requestID)
			return
		}
	}

	var vErr *payroll.ValidationError
	if errors.As(err, &vErr) {
		if h.Metrics != nil {
			h.Metrics.BonusRejected()
		}
		reason := "must be a number"
		switch {
		case errors.Is(err, payroll.ErrNegativeBonus):
			reason = "must not be negative"
		case errors.Is(err, payroll.ErrAmountTooLarge):
			reason = "exceeds the supported maximum"
		}
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "bonus", Reason: reason}})
		return
	}
	failPayroll(w, err, requestID)
}

func parseBonus(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, payroll.ValidateBonus(v)
	case string:
		return payroll.ParseBonus(v)
	default:
		return 0, &payroll.ValidationError{Field: "bonus", Err: payroll.ErrBonusNotNumber}
	}
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}
	rows, _, err := s.Payroll()
	if err != nil {
		failPayroll(w, err, requestID)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePayrollCSV(&buf, rows); err != nil {
		slog.Error("payroll csv failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to write payroll", requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.PayrollRun()
	}
	api.Download(w, "text/csv; charset=utf-8", "payroll.csv", buf.Bytes())
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}
	rows, summary, err := s.Payroll()
	if err != nil {
		failPayroll(w, err, requestID)
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.PayrollReport(&buf, h.Title, rows, summary); err != nil {
		slog.Error("payroll report failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render report", requestID)
		return
	}
	api.Download(w, "application/pdf", "payroll.pdf", buf.Bytes())
}

func failPayroll(w http.ResponseWriter, err error, requestID string) {
	slog.Error("payroll snapshot failed", "err", err)
	api.Fail(w, http.StatusInternalServerError, "payroll_failed", "failed to compute payroll", requestID)
}
