package management

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/israelmw/QuickAudit/api/auth"
	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/db"
	"go.uber.org/zap"
)

func (m *ManagementRessource) logFilter(r *http.Request) (db.LogFilter, bool) {
	q := r.URL.Query()
	filter := db.LogFilter{
		Table:     q.Get("table"),
		UserEmail: q.Get("user"),
	}
	if filter.UserEmail != "" && m.validate.Var(filter.UserEmail, "email") != nil {
		return filter, false
	}
	if op := q.Get("operation"); op != "" {
		parsed, err := audit.ParseOperation(op)
		if err != nil {
			return filter, false
		}
		filter.Operation = string(parsed)
	}
	return filter, true
}

func (m *ManagementRessource) listLogs(w http.ResponseWriter, r *http.Request) {
	page := r.Context().Value(pageNumberKey).(int)
	pageSize := r.Context().Value(pageSizeKey).(int)
	query := r.Context().Value(queryKey).(string)
	sort := r.Context().Value(sortKey).(string)

	filter, ok := m.logFilter(r)
	if !ok {
		_ = render.Render(w, r, createError("invalid filter", http.StatusBadRequest))
		return
	}
	logs, err := m.logService.List(r.Context(), page, pageSize, query, sort, filter)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	render.Respond(w, r, logs)
}

func (m *ManagementRessource) logByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		_ = render.Render(w, r, createError("invalid id", http.StatusBadRequest))
		return
	}
	entry, err := m.logService.ByID(r.Context(), id)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	if err := render.Render(w, r, entry); err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) revertLog(w http.ResponseWriter, r *http.Request) {
	var req revertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(req); err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.logService.Revert(r.Context(), req.ID, auth.OperatorFrom(r.Context())); err != nil {
		m.renderError(w, r, err)
		return
	}
	err := render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Change reverted",
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}
