package sessionhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"schooladmin/internal/app/session"
	"schooladmin/internal/domain/auth"
	"schooladmin/internal/domain/roster"
	"schooladmin/internal/importer"
	"schooladmin/internal/platform/metrics"
	"schooladmin/internal/transport/http/api"
	"schooladmin/internal/transport/http/middleware"
	"schooladmin/internal/transport/http/shared"
)

type Handler struct {
	Registry       *session.Registry
	Secret         string
	AccessCodeHash string
	Metrics        *metrics.Collector
}

func NewHandler(registry *session.Registry, secret, accessCodeHash string, collector *metrics.Collector) *Handler {
	return &Handler{Registry: registry, Secret: secret, AccessCodeHash: accessCodeHash, Metrics: collector}
}

// RegisterRoutes mounts the public open route. The close route needs a session
// and is registered with RegisterAuthedRoutes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.HandleOpen)
}

func (h *Handler) RegisterAuthedRoutes(r chi.Router) {
	r.Delete("/sessions", h.HandleClose)
}

type openResponse struct {
	Token           string    `json:"token"`
	SessionID       string    `json:"sessionId"`
	ExpiresAt       time.Time `json:"expiresAt"`
	DroppedStudents int       `json:"droppedStudents"`
}

func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		AccessCode string `json:"accessCode"`
	}
	if r.ContentLength != 0 {
		if !shared.DecodeJSON(w, r, &payload, requestID) {
			return
		}
	}
	if h.AccessCodeHash != "" {
		v := shared.NewValidator()
		v.Required("accessCode", payload.AccessCode, "is required")
		if v.Reject(w, requestID) {
			return
		}
	}
	if err := auth.CheckAccessCode(h.AccessCodeHash, payload.AccessCode); err != nil {
		api.Fail(w, http.StatusUnauthorized, "access_denied", "access code does not match", requestID)
		return
	}

	s, err := h.Registry.Open(r.Context())
	if err != nil {
		failLoad(w, err, requestID)
		return
	}
	stats, err := s.Stats(session.ViewCurrent)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_open_failed", "failed to open session", requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.SessionOpened(stats.DroppedOnLoad)
	}

	token, err := auth.GenerateToken(h.Secret, s.ID, s.CreatedAt, h.Registry.TTL())
	if err != nil {
		slog.Error("session token signing failed", "err", err)
		_ = h.Registry.Close(s.ID)
		api.Fail(w, http.StatusInternalServerError, "session_open_failed", "failed to open session", requestID)
		return
	}

	api.Created(w, openResponse{
		Token:           token,
		SessionID:       s.ID,
		ExpiresAt:       s.ExpiresAt,
		DroppedStudents: stats.DroppedOnLoad,
	}, requestID)
}

func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session required", requestID)
		return
	}
	if err := h.Registry.Close(s.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
		api.Fail(w, http.StatusInternalServerError, "session_close_failed", "failed to close session", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "closed"}, requestID)
}

// failLoad reports a roster or staff file that could not be loaded. The details
// point at the offending source line so an operator can fix the file.
func failLoad(w http.ResponseWriter, err error, requestID string) {
	var loadErr *roster.LoadError
	var staffErr *importer.StaffError
	switch {
	case errors.As(err, &loadErr):
		slog.Warn("roster load failed", "err", err)
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "roster_load_failed", loadErr.Error(), map[string]any{
			"source": loadErr.Source,
			"line":   loadErr.Line,
			"field":  loadErr.Field,
		}, requestID)
	case errors.As(err, &staffErr):
		slog.Warn("staff load failed", "err", err)
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "staff_load_failed", staffErr.Error(), map[string]any{
			"index": staffErr.Index,
			"field": staffErr.Field,
		}, requestID)
	default:
		slog.Error("session open failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "session_open_failed", "failed to open session", requestID)
	}
}
