package manage

import (
	"context"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/db/tables"
	"github.com/israelmw/QuickAudit/events"
)

// ConfigStorer reads and changes the audit configuration
type ConfigStorer interface {
	TableConfigs(ctx context.Context) ([]*tables.QuickAuditConfigTable, error)
	TableConfigByName(ctx context.Context, name string) (*tables.QuickAuditConfigTable, error)
	InsertMissingTableConfigs(ctx context.Context, names []string) ([]string, error)
	SetAuditEnabled(ctx context.Context, name string, enabled bool) error
	SetAllAuditEnabled(ctx context.Context) error
	SchemaTables(ctx context.Context) ([]string, error)
}

// LogStorer reads the audit log and applies reverts
type LogStorer interface {
	RecentAuditLogs(ctx context.Context, limit int) ([]*tables.AuditLogTable, error)
	AuditLogs(
		ctx context.Context,
		opts db.ListOptions,
		filter db.LogFilter,
	) ([]*tables.AuditLogTable, int, error)
	AuditLogByID(ctx context.Context, id int64) (*tables.AuditLogTable, error)
	ApplyRevert(ctx context.Context, plan *audit.RevertPlan, entryID int64) error
}

// Dispatcher dispatches domain events
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}
