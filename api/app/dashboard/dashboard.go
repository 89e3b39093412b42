package dashboard

import (
	"crypto/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/gorilla/csrf"
	"github.com/israelmw/QuickAudit/api/app/management"
	"github.com/israelmw/QuickAudit/api/auth"
	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/sanitize"
	"go.uber.org/zap"
	"maragu.dev/gomponents"
)

const csrfField = "csrf_token"

const (
	tabTables = "tables"
	tabLogs   = "logs"
)

// DashboardRessource serves the server rendered operator dashboard
type DashboardRessource struct {
	log             *zap.Logger
	cfg             *config.Configuration
	csrfKey         []byte
	tokenAuth       *jwtauth.JWTAuth
	overviewService OverviewService
	tableService    TableService
	logService      LogService
	feed            Feed
}

// Router returns the dashboard routes, every form post needs a valid csrf token
func (d *DashboardRessource) Router() *chi.Mux {
	r := chi.NewRouter()
	secure := d.cfg.Server != nil && d.cfg.Server.SecureCookies
	r.Use(csrf.Protect(d.csrfKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(csrfField),
		csrf.ErrorHandler(http.HandlerFunc(d.forbidden)),
	))
	d.routes(r)
	return r
}

func (d *DashboardRessource) routes(r chi.Router) {
	r.Group(func(gr chi.Router) {
		gr.Use(auth.Required(d.tokenAuth))
		gr.Get("/", d.index)
		gr.Post("/tables/toggle", d.toggleTable)
		gr.Post("/tables/enable-all", d.enableAllTables)
		gr.Post("/logs/{id}/revert", d.revertLog)
		gr.Get("/events", d.events)
	})
}

func (d *DashboardRessource) forbidden(w http.ResponseWriter, r *http.Request) {
	d.log.Info("csrf validation failed",
		sanitize.UserInputString("path", r.URL.Path),
		zap.Error(csrf.FailureReason(r)),
	)
	renderHTML(w, http.StatusForbidden, errorPage(d.name(), "The form has expired, please reload the page and try again."))
}

func (d *DashboardRessource) name() string {
	if d.cfg.Behaviour == nil || d.cfg.Behaviour.Name == "" {
		return "QuickAudit"
	}
	return d.cfg.Behaviour.Name
}

func filterFromQuery(q url.Values) (audit.Filter, string) {
	f := audit.Filter{
		Search: q.Get("q"),
		Table:  q.Get("table"),
	}
	if op := q.Get("operation"); op != "" {
		parsed, err := audit.ParseOperation(op)
		if err != nil {
			return f, err.Error()
		}
		f.Operation = parsed
	}
	return f, ""
}

func (d *DashboardRessource) index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := q.Get("tab")
	if tab != tabLogs {
		tab = tabTables
	}
	filter, filterErr := filterFromQuery(q)
	overview, err := d.overviewService.Overview(r.Context(), filter)
	if err != nil {
		d.log.Error("loading overview failed", zap.Error(err))
		renderHTML(w, management.StatusFor(err), errorPage(d.name(), "Failed to load the audit data: "+management.MessageFor(err)))
		return
	}
	flash := q.Get("error")
	if flash == "" {
		flash = filterErr
	}
	renderHTML(w, http.StatusOK, overviewPage(pageData{
		Overview:  overview,
		Tab:       tab,
		Filter:    filter,
		Error:     flash,
		Notice:    q.Get("notice"),
		CSRFToken: csrf.Token(r),
		Operator:  auth.OperatorFrom(r.Context()),
		LiveFeed:  d.feed != nil,
	}))
}

// back redirects to the overview, failures end up as flash message
func back(w http.ResponseWriter, r *http.Request, tab string, notice string, failure string) {
	v := url.Values{}
	v.Set("tab", tab)
	if failure != "" {
		v.Set("error", failure)
	} else if notice != "" {
		v.Set("notice", notice)
	}
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

func (d *DashboardRessource) toggleTable(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		back(w, r, tabTables, "", "invalid form")
		return
	}
	name := r.PostForm.Get("table_name")
	if name == "" {
		back(w, r, tabTables, "", "table name is required")
		return
	}
	enable, err := strconv.ParseBool(r.PostForm.Get("enable"))
	if err != nil {
		back(w, r, tabTables, "", "enable needs to be true or false")
		return
	}
	if err := d.tableService.Toggle(r.Context(), name, enable, auth.OperatorFrom(r.Context())); err != nil {
		d.log.Error("toggling table failed", zap.String("table", name), zap.Error(err))
		back(w, r, tabTables, "", management.MessageFor(err))
		return
	}
	state := "disabled"
	if enable {
		state = "enabled"
	}
	back(w, r, tabTables, "Audit "+state+" for "+name, "")
}

func (d *DashboardRessource) enableAllTables(w http.ResponseWriter, r *http.Request) {
	if err := d.tableService.EnableAll(r.Context(), auth.OperatorFrom(r.Context())); err != nil {
		d.log.Error("enabling all tables failed", zap.Error(err))
		back(w, r, tabTables, "", management.MessageFor(err))
		return
	}
	back(w, r, tabTables, "Audit enabled for all tables", "")
}

func (d *DashboardRessource) revertLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		back(w, r, tabLogs, "", "invalid audit log entry")
		return
	}
	if err := d.logService.Revert(r.Context(), id, auth.OperatorFrom(r.Context())); err != nil {
		d.log.Error("reverting change failed", zap.Int64("id", id), zap.Error(err))
		back(w, r, tabLogs, "", management.MessageFor(err))
		return
	}
	back(w, r, tabLogs, "Change reverted", "")
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// NewDashboardRessource creates the dashboard, a random csrf key is used when none is configured
func NewDashboardRessource(logger *zap.Logger,
	cfg *config.Configuration,
	tokenAuth *jwtauth.JWTAuth,
	overviewService OverviewService,
	tableService TableService,
	logService LogService,
	feed Feed) *DashboardRessource {
	var key []byte
	if cfg.Server != nil && cfg.Server.CSRFToken != "" {
		key = []byte(cfg.Server.CSRFToken)
	} else {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			logger.Fatal("unable to generate csrf key", zap.Error(err))
		}
		logger.Warn("no server.csrf-token configured, forms break on restart")
	}
	return &DashboardRessource{
		log:             logger,
		cfg:             cfg,
		csrfKey:         key,
		tokenAuth:       tokenAuth,
		overviewService: overviewService,
		tableService:    tableService,
		logService:      logService,
		feed:            feed,
	}
}
