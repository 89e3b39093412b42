package tables

import (
	"time"

	"github.com/google/uuid"
)

// QuickAuditConfigTable represents the quickaudit_config table
type QuickAuditConfigTable struct {
	ID           uuid.UUID `db:"id"            fiql:"id,db:id"`
	TableName    string    `db:"table_name"    fiql:"table_name,db:table_name"`
	AuditEnabled bool      `db:"audit_enabled" fiql:"audit_enabled,db:audit_enabled"`
	CreatedAt    time.Time `db:"created_at"    fiql:"created_at,db:created_at"`
}
