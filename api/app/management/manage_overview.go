package management

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/israelmw/QuickAudit/audit"
	"go.uber.org/zap"
)

func (m *ManagementRessource) overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.Filter{
		Search: q.Get("q"),
		Table:  q.Get("table"),
	}
	if op := q.Get("operation"); op != "" {
		parsed, err := audit.ParseOperation(op)
		if err != nil {
			_ = render.Render(w, r, createError("invalid filter", http.StatusBadRequest))
			return
		}
		filter.Operation = parsed
	}
	o, err := m.overviewService.Overview(r.Context(), filter)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	if err := render.Render(w, r, o); err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}
