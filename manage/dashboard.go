package manage

import (
	"context"
	"time"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/config"
	"go.uber.org/zap"
)

// DashboardService assembles the dashboard overview
type DashboardService struct {
	tables *TableService
	logs   *LogService
	store  ConfigStorer
	log    *zap.Logger
	cfg    *config.Configuration
	now    func() time.Time
}

// Overview loads configuration, schema and recent changes.
// Schema tables without configuration are added once per call,
// a failed insert leaves the configuration as loaded.
// When the schema cannot be listed the configuration stands in for it.
func (d *DashboardService) Overview(ctx context.Context, filter audit.Filter) (*OverviewDTO, error) {
	schema, err := d.store.SchemaTables(ctx)
	schemaAvailable := err == nil
	if err != nil {
		d.log.Warn("listing schema tables failed, falling back to configuration", zap.Error(err))
		schema = nil
	}

	configs, err := d.tables.configs(ctx)
	if err != nil {
		return nil, err
	}
	if missing := audit.MissingTables(configs, schema); len(missing) > 0 {
		if _, err := d.tables.addMissing(ctx, missing); err != nil {
			d.log.Warn("adding missing tables failed, showing loaded configuration", zap.Error(err))
		} else if configs, err = d.tables.configs(ctx); err != nil {
			return nil, err
		}
	}

	entries, err := d.logs.recentEntries(ctx)
	if err != nil {
		return nil, err
	}

	stats := audit.ComputeStats(configs, schema, entries, d.now().Add(-d.cfg.RecentWindow()))
	dto := &OverviewDTO{
		Name:            d.cfg.Behaviour.Name,
		Stats:           stats,
		Active:          stats.Active(),
		RetentionDays:   d.cfg.Behaviour.RetentionDays,
		Tables:          make([]*TableConfigDTO, 0, len(configs)),
		Feed:            feed(entries, filter),
		SchemaAvailable: schemaAvailable,
	}
	for _, c := range configs {
		dto.Tables = append(dto.Tables, tableConfigDTO(c))
	}
	return dto, nil
}

func NewDashboardService(
	tables *TableService,
	logs *LogService,
	store ConfigStorer,
	log *zap.Logger,
	cfg *config.Configuration,
) *DashboardService {
	return &DashboardService{
		tables: tables,
		logs:   logs,
		store:  store,
		log:    log,
		cfg:    cfg,
		now:    time.Now,
	}
}
