package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"schooladmin/internal/app/session"
	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
	"schooladmin/internal/export"
	"schooladmin/internal/importer"
	"schooladmin/internal/platform/config"
	"schooladmin/internal/platform/jobs"
	"schooladmin/internal/platform/metrics"
	"schooladmin/internal/transport/http/api"
	payrollhandler "schooladmin/internal/transport/http/handlers/payroll"
	rosterhandler "schooladmin/internal/transport/http/handlers/roster"
	sessionhandler "schooladmin/internal/transport/http/handlers/session"
	"schooladmin/internal/transport/http/middleware"
)

const sweepInterval = time.Minute

type App struct {
	Config   config.Config
	Sessions *session.Registry
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
	Router   http.Handler

	cancel context.CancelFunc
}

// NewLoader reads the roster and staff files configured in cfg. Every call
// reads the files again so each session starts from what is on disk.
func NewLoader(cfg config.Config) session.Loader {
	policy := payroll.Policy{TeacherZeroExperienceBase: cfg.TeacherZeroExperienceBase}
	return func(ctx context.Context) (*roster.Store, *payroll.Engine, error) {
		store, err := importer.LoadRoster(cfg.SchoolName, cfg.ClassesPath(), cfg.StudentsPath())
		if err != nil {
			return nil, nil, err
		}
		engine, err := importer.LoadEngine(cfg.StaffPath(), policy)
		if err != nil {
			return nil, nil, err
		}
		return store, engine, nil
	}
}

// New wires the HTTP application and starts its background jobs. Close stops
// them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	app := &App{
		Config:   cfg,
		Sessions: session.NewRegistry(cfg.SessionTTL, NewLoader(cfg)),
		Jobs:     jobs.New(),
		Metrics:  metrics.New(),
		cancel:   cancel,
	}
	app.Jobs.Start(ctx)
	app.Jobs.Every(ctx, jobs.JobSessionSweep, sweepInterval, func(context.Context) (any, error) {
		return map[string]int{"expired": app.Sessions.Sweep(), "open": app.Sessions.Len()}, nil
	})
	app.Router = app.routes()
	return app, nil
}

func (a *App) Close() {
	a.cancel()
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	renderer := export.NewRenderer(cfg.PDFFontPath)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := a.Metrics.Snapshot()
			snapshot["openSessions"] = a.Sessions.Len()
			snapshot["jobs"] = a.Jobs.History()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		sessionHandler := sessionhandler.NewHandler(a.Sessions, cfg.SessionSecret, cfg.AccessCodeHash, a.Metrics)
		sessionHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(cfg.SessionSecret, a.Sessions))

			sessionHandler.RegisterAuthedRoutes(r)

			rosterHandler := rosterhandler.NewHandler(renderer, a.Jobs, a.Metrics)
			rosterHandler.RegisterRoutes(r)

			payrollHandler := payrollhandler.NewHandler(renderer, cfg.SchoolName+" payroll", a.Metrics)
			payrollHandler.RegisterRoutes(r)
		})
	})

	return router
}

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("dotenv load failed", "err", err)
		os.Exit(1)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("school admin server listening", "addr", cfg.Addr, "school", cfg.SchoolName, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
