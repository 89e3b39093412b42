package management

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"
	"github.com/israelmw/QuickAudit/api/auth"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/sanitize"
	"go.uber.org/zap"
)

// ManagementRessource habours the headless json endpoints
type ManagementRessource struct {
	log             *zap.Logger
	cfg             *config.Configuration
	validate        *validator.Validate
	tokenAuth       *jwtauth.JWTAuth
	tableService    TableService
	logService      LogService
	overviewService OverviewService
}

func (m *ManagementRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	if m.cfg.ManageEndpoint != nil && m.cfg.ManageEndpoint.CORS != nil {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   m.cfg.ManageEndpoint.CORS.AllowedOrigins,
			AllowedMethods:   m.cfg.ManageEndpoint.CORS.AllowedMethods,
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: m.cfg.ManageEndpoint.CORS.AllowCredentials,
			MaxAge:           300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.log.Debug(
			"Could not found",
			zap.String("method", r.Method),
			sanitize.UserInputString("path", r.URL.Path),
		)
		w.WriteHeader(http.StatusNotFound)
	})

	r.Get("/.ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	r.Group(func(gr chi.Router) {
		gr.Use(auth.Required(m.tokenAuth))
		gr.Get("/overview", m.overview)
		gr.Route("/tables", func(r chi.Router) {
			r.Get("/", m.listTables)
			r.Put("/toggle", m.toggleTable)
			r.Put("/enable-all", m.enableAllTables)
			r.Post("/sync", m.syncTables)
		})
		gr.Route("/logs", func(r chi.Router) {
			r.With(pageinate).Get("/", m.listLogs)
			r.Get("/{id}", m.logByID)
			r.Post("/revert", m.revertLog)
		})
	})
	return r
}

func NewManagementRessource(logger *zap.Logger,
	cfg *config.Configuration,
	tokenAuth *jwtauth.JWTAuth,
	tableService TableService,
	logService LogService,
	overviewService OverviewService) *ManagementRessource {
	return &ManagementRessource{
		log:             logger,
		cfg:             cfg,
		validate:        validator.New(),
		tokenAuth:       tokenAuth,
		tableService:    tableService,
		logService:      logService,
		overviewService: overviewService,
	}
}

type pageKey string

var pageSizeKey pageKey = "page_size"
var pageNumberKey pageKey = "page"
var queryKey pageKey = "query"
var sortKey pageKey = "sort"

const defaultPageSize = 25

func pageinate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		intOrDefault := func(in string, def int) int {
			if in == "" {
				return def
			}
			i, err := strconv.Atoi(in)
			if err != nil || i <= 0 {
				return def
			}
			return i
		}
		ctx = context.WithValue(ctx, pageNumberKey, intOrDefault(r.URL.Query().Get("page"), 1))
		ctx = context.WithValue(ctx, pageSizeKey, intOrDefault(r.URL.Query().Get("page_size"), defaultPageSize))
		ctx = context.WithValue(ctx, queryKey, r.URL.Query().Get("query"))
		ctx = context.WithValue(ctx, sortKey, r.URL.Query().Get("sort"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
