// Package audit holds the pure audit-log logic: row images, per-field diffs,
// feed filtering, dashboard stats, schema reconciliation and revert planning.
package audit

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Operation is the kind of row change captured by the trigger layer
type Operation string

const (
	OperationInsert Operation = "INSERT"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// ErrUnknownOperation is returned for operation kinds other than INSERT, UPDATE and DELETE
var ErrUnknownOperation = errors.New("unknown operation")

// ParseOperation parses an operation kind, ignoring case and surrounding whitespace
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToUpper(strings.TrimSpace(s))) {
	case OperationInsert:
		return OperationInsert, nil
	case OperationUpdate:
		return OperationUpdate, nil
	case OperationDelete:
		return OperationDelete, nil
	}
	return "", errors.Wrapf(ErrUnknownOperation, "%q", s)
}

func (o Operation) String() string {
	return string(o)
}

// RowImage is a decoded row as captured by the trigger layer.
// A nil image means no image was captured (e.g. the old image of an INSERT).
type RowImage map[string]interface{}

// TableConfig is the audit configuration of a single database table
type TableConfig struct {
	ID           uuid.UUID
	TableName    string
	AuditEnabled bool
	CreatedAt    time.Time
}

// Entry is a single captured row change
type Entry struct {
	ID        int64
	TableName string
	Operation Operation
	RowData   RowImage
	OldData   RowImage
	UserEmail string
	Timestamp time.Time
	Reverted  bool
}

// Actor returns the acting user, changes without a user are attributed to the system
func (e Entry) Actor() string {
	if e.UserEmail == "" {
		return "System"
	}
	return e.UserEmail
}

// Summary returns the short description shown in the change feed
func (e Entry) Summary() string {
	switch e.Operation {
	case OperationUpdate:
		if text, ok := DiffText(e.OldData, e.RowData); ok {
			return text
		}
		return "No changes"
	case OperationInsert:
		return "New record created"
	default:
		return "Record deleted"
	}
}
