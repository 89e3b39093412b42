package management

import (
	"context"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/manage"
)

// TableService enables managing the audit configuration
type TableService interface {
	List(ctx context.Context) ([]*manage.TableConfigDTO, error)
	Toggle(ctx context.Context, name string, enable bool, by string) error
	EnableAll(ctx context.Context, by string) error
	Sync(ctx context.Context) ([]string, error)
}

// LogService enables reading and reverting the audit log
type LogService interface {
	List(
		ctx context.Context,
		page int,
		pageSize int,
		q string,
		sort string,
		filter db.LogFilter,
	) (*manage.PaginationResponse, error)
	ByID(ctx context.Context, id int64) (*manage.AuditLogDTO, error)
	Revert(ctx context.Context, id int64, by string) error
}

// OverviewService assembles the dashboard overview
type OverviewService interface {
	Overview(ctx context.Context, filter audit.Filter) (*manage.OverviewDTO, error)
}
