package rosterhandler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"schooladmin/internal/app/session"
	"schooladmin/internal/export"
	"schooladmin/internal/platform/jobs"
	"schooladmin/internal/platform/metrics"
	"schooladmin/internal/transport/http/api"
	"schooladmin/internal/transport/http/middleware"
	"schooladmin/internal/transport/http/shared"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

var views = []string{session.ViewCurrent, session.ViewBaseline}

type Handler struct {
	Renderer *export.Renderer
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
}

func NewHandler(renderer *export.Renderer, jobService *jobs.Service, collector *metrics.Collector) *Handler {
	return &Handler{Renderer: renderer, Jobs: jobService, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roster", func(r chi.Router) {
		r.Get("/stats", h.handleStats)
		r.Get("/classes", h.handleClasses)
		r.Get("/students", h.handleStudents)
		r.Post("/promote", h.handlePromote)
		r.Get("/export.xlsx", h.handleExportXLSX)
		r.Get("/report.pdf", h.handleReportPDF)
	})
}

// sessionAndView resolves the caller's session and the ?view= parameter. On
// failure the response has been written.
func sessionAndView(w http.ResponseWriter, r *http.Request) (*session.Session, string, bool) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return nil, "", false
	}
	view := r.URL.Query().Get("view")
	v := shared.NewValidator()
	v.Enum("view", view, views, "must be current or baseline")
	if v.Reject(w, requestID) {
		return nil, "", false
	}
	if view == "" {
		view = session.ViewCurrent
	}
	return s, view, true
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	s, view, ok := sessionAndView(w, r)
	if !ok {
		return
	}
	stats, err := s.Stats(view)
	if err != nil {
		failView(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClasses(w http.ResponseWriter, r *http.Request) {
	s, view, ok := sessionAndView(w, r)
	if !ok {
		return
	}
	rows, err := s.ClassTable(view)
	if err != nil {
		failView(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStudents(w http.ResponseWriter, r *http.Request) {
	s, view, ok := sessionAndView(w, r)
	if !ok {
		return
	}
	rows, err := s.StudentTable(view)
	if err != nil {
		failView(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	start, end := page.Window(len(rows))
	w.Header().Set("X-Total-Count", strconv.Itoa(len(rows)))
	api.Success(w, rows[start:end], middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}

	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	if !payload.Confirm {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "confirm", Reason: "must be true to promote all classes"}})
		return
	}

	report, err := s.Promote()
	if err != nil {
		slog.Error("roster invariant violated after promotion", "sessionId", s.ID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "promotion_failed", "roster is inconsistent after promotion", requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.Promoted(len(report.Graduated))
	}
	slog.Info("roster promoted", "sessionId", s.ID, "graduated", len(report.Graduated), "promoted", len(report.Promoted))
	api.Success(w, report, requestID)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s, view, ok := sessionAndView(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	classes, err := s.ClassTable(view)
	if err != nil {
		failView(w, err, requestID)
		return
	}
	students, err := s.StudentTable(view)
	if err != nil {
		failView(w, err, requestID)
		return
	}

	var buf bytes.Buffer
	if err := (export.Workbook{Classes: classes, Students: students}).Write(&buf); err != nil {
		slog.Error("roster workbook failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", requestID)
		return
	}
	api.Download(w, contentTypeXLSX, "roster_"+view+".xlsx", buf.Bytes())
}

// handleReportPDF renders the current roster, preceded by the roster as loaded
// once a promotion has happened.
func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}
	current, err := s.Stats(session.ViewCurrent)
	if err != nil {
		failView(w, err, requestID)
		return
	}
	pages := []export.ReportPage{{Label: "current", Stats: current}}
	if current.PromotionCount > 0 {
		baseline, err := s.Stats(session.ViewBaseline)
		if err != nil {
			failView(w, err, requestID)
			return
		}
		pages = []export.ReportPage{
			{Label: "before promotion", Stats: baseline},
			{Label: "after promotion", Stats: current},
		}
	}

	var buf bytes.Buffer
	render := func(context.Context) (any, error) {
		if err := h.Renderer.RosterReport(&buf, pages...); err != nil {
			return nil, err
		}
		return map[string]any{"sessionId": s.ID, "pages": len(pages), "bytes": buf.Len()}, nil
	}
	if h.Jobs != nil {
		_, err = h.Jobs.RunNow(r.Context(), jobs.JobRosterReport, render)
	} else {
		_, err = render(r.Context())
	}
	if err != nil {
		slog.Error("roster report failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render report", requestID)
		return
	}
	api.Download(w, contentTypePDF, "roster_report.pdf", buf.Bytes())
}

func failView(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, session.ErrUnknownView) {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "view", Reason: "must be current or baseline"}})
		return
	}
	api.Fail(w, http.StatusInternalServerError, "roster_failed", "failed to read roster", requestID)
}
