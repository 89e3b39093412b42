package management

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"github.com/israelmw/QuickAudit/api/auth"
	"go.uber.org/zap"
)

func (m *ManagementRessource) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		m.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	if rerr := render.Render(w, r, createError(MessageFor(err), status)); rerr != nil {
		m.log.Error("unable to render response", zap.Error(rerr))
	}
}

func (m *ManagementRessource) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := m.tableService.List(r.Context())
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	render.Respond(w, r, tables)
}

func (m *ManagementRessource) toggleTable(w http.ResponseWriter, r *http.Request) {
	var req toggleTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.log.Info("invalid payload data", zap.Error(err))
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.validate.Struct(req); err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := m.tableService.Toggle(r.Context(), req.TableName, *req.Enable, auth.OperatorFrom(r.Context())); err != nil {
		m.renderError(w, r, err)
		return
	}
	message := "Successfully disabled auditing"
	if *req.Enable {
		message = "Successfully enabled auditing"
	}
	if err := render.Render(w, r, &genericSuccessResponse{Success: true, Message: message}); err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) enableAllTables(w http.ResponseWriter, r *http.Request) {
	if err := m.tableService.EnableAll(r.Context(), auth.OperatorFrom(r.Context())); err != nil {
		m.renderError(w, r, err)
		return
	}
	err := render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Successfully enabled auditing for all tables",
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func (m *ManagementRessource) syncTables(w http.ResponseWriter, r *http.Request) {
	inserted, err := m.tableService.Sync(r.Context())
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	err = render.Render(w, r, &genericSuccessResponse{
		Success: true,
		Message: "Schema synchronized",
		Tables:  inserted,
	})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}
