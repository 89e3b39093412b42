package dashboard

import (
	"context"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/manage"
	"github.com/israelmw/QuickAudit/notify"
)

// OverviewService assembles everything the page shows
type OverviewService interface {
	Overview(ctx context.Context, filter audit.Filter) (*manage.OverviewDTO, error)
}

// TableService toggles audit capture
type TableService interface {
	Toggle(ctx context.Context, name string, enable bool, by string) error
	EnableAll(ctx context.Context, by string) error
}

// LogService reverts captured changes
type LogService interface {
	Revert(ctx context.Context, id int64, by string) error
}

// Feed is the live feed the page listens to
type Feed interface {
	Subscribe(ctx context.Context) notify.Subscription
}
