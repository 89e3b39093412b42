package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/israelmw/QuickAudit/api/app/dashboard"
	"github.com/israelmw/QuickAudit/api/app/management"
	"github.com/israelmw/QuickAudit/api/auth"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/manage"
	"github.com/israelmw/QuickAudit/metrics"
	"github.com/israelmw/QuickAudit/notify"
	"go.uber.org/zap"
)

const requestTimeout = 50 * time.Second

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	pinger Pinger,
	tableService *manage.TableService,
	logService *manage.LogService,
	overviewService *manage.DashboardService,
	m *metrics.Metrics,
	feed *notify.LiveFeed) *chi.Mux {

	tokenAuth := auth.New(cfg.Auth)
	if tokenAuth == nil {
		logger.Warn("auth.jwt-secret is not set, every request acts as " + auth.Anonymous)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	if m != nil {
		r.Use(m.Middleware)
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, m.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.ManageEndpoint != nil && cfg.ManageEndpoint.Enable {
		manageRessource := management.NewManagementRessource(
			logger.Named("management_ressource"),
			cfg,
			tokenAuth,
			tableService,
			logService,
			overviewService,
		)
		r.With(middleware.Timeout(requestTimeout)).Mount("/manage", manageRessource.Router())
	}

	// no request timeout here, /events streams
	var dashboardFeed dashboard.Feed
	if feed != nil {
		dashboardFeed = feed
	}
	dashboardRessource := dashboard.NewDashboardRessource(
		logger.Named("dashboard_ressource"),
		cfg,
		tokenAuth,
		overviewService,
		tableService,
		logService,
		dashboardFeed,
	)
	r.Mount("/", dashboardRessource.Router())

	return r
}
