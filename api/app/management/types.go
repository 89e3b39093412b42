package management

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/render"
	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/manage"
)

type genericSuccessResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Tables  []string `json:"tables,omitempty"`
}

func (g *genericSuccessResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func createError(err string, status int) *genericErrorResponse {
	return &genericErrorResponse{
		Error:      err,
		StatusCode: status,
	}
}

type genericErrorResponse struct {
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *genericErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// StatusFor maps domain errors to http status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, manage.ErrUnknownTable), errors.Is(err, manage.ErrUnknownEntry):
		return http.StatusNotFound
	case errors.Is(err, audit.ErrAlreadyReverted), errors.Is(err, db.ErrNothingToRevert):
		return http.StatusConflict
	case errors.Is(err, audit.ErrMissingImage),
		errors.Is(err, audit.ErrMissingPrimaryKey),
		errors.Is(err, audit.ErrInvalidIdentifier),
		errors.Is(err, audit.ErrUnknownOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrInvalidFilter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// MessageFor returns a message that is safe to show to an operator
func MessageFor(err error) string {
	switch StatusFor(err) {
	case http.StatusInternalServerError:
		return "internal error"
	case http.StatusConflict:
		if errors.Is(err, db.ErrNothingToRevert) {
			return db.ErrNothingToRevert.Error()
		}
		return audit.ErrAlreadyReverted.Error()
	}
	return err.Error()
}

type toggleTableRequest struct {
	TableName string `json:"table_name" validate:"required,max=255"`
	Enable    *bool  `json:"enable"     validate:"required"`
}

type revertRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}
