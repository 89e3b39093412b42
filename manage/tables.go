package manage

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/events/event"
	"github.com/israelmw/QuickAudit/sanitize"
	"go.uber.org/zap"
)

// ErrUnknownTable is returned for tables without a configuration row
var ErrUnknownTable = errors.New("table is not part of the audit configuration")

// TableService manages which tables are audited
type TableService struct {
	store      ConfigStorer
	log        *zap.Logger
	dispatcher Dispatcher
}

// List returns the configuration ordered by table name
func (t *TableService) List(ctx context.Context) ([]*TableConfigDTO, error) {
	configs, err := t.configs(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*TableConfigDTO, 0, len(configs))
	for _, c := range configs {
		dtos = append(dtos, tableConfigDTO(c))
	}
	return dtos, nil
}

func (t *TableService) configs(ctx context.Context) ([]audit.TableConfig, error) {
	rows, err := t.store.TableConfigs(ctx)
	if err != nil {
		return nil, err
	}
	configs := make([]audit.TableConfig, 0, len(rows))
	for _, r := range rows {
		configs = append(configs, tableConfigFromDB(r))
	}
	return configs, nil
}

// Toggle enables or disables auditing of a single table
func (t *TableService) Toggle(ctx context.Context, name string, enable bool, by string) error {
	if _, err := t.store.TableConfigByName(ctx, name); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUnknownTable
		}
		return err
	}
	if err := t.store.SetAuditEnabled(ctx, name, enable); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUnknownTable
		}
		t.log.Error("toggling table audit failed", sanitize.UserInputString("table", name), zap.Error(err))
		return err
	}
	t.log.Info("table audit toggled",
		sanitize.UserInputString("table", name),
		zap.Bool("enabled", enable),
		sanitize.UserInputString("by", by),
	)
	t.dispatcher.Dispatch(ctx, &event.TableAuditToggled{Table: name, Enabled: enable, By: by})
	return nil
}

// EnableAll enables auditing of every configured table
func (t *TableService) EnableAll(ctx context.Context, by string) error {
	if err := t.store.SetAllAuditEnabled(ctx); err != nil {
		t.log.Error("enabling all audits failed", zap.Error(err))
		return err
	}
	t.dispatcher.Dispatch(ctx, &event.AllAuditsEnabled{By: by})
	return nil
}

// Sync adds a disabled configuration row for every schema table that has none
// and returns the added table names
func (t *TableService) Sync(ctx context.Context) ([]string, error) {
	schema, err := t.store.SchemaTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing schema tables")
	}
	configs, err := t.configs(ctx)
	if err != nil {
		return nil, err
	}
	return t.addMissing(ctx, audit.MissingTables(configs, schema))
}

func (t *TableService) addMissing(ctx context.Context, missing []string) ([]string, error) {
	if len(missing) == 0 {
		return []string{}, nil
	}
	inserted, err := t.store.InsertMissingTableConfigs(ctx, missing)
	if err != nil {
		return nil, errors.Wrap(err, "adding missing tables")
	}
	if len(inserted) > 0 {
		t.dispatcher.Dispatch(ctx, &event.TablesDiscovered{Tables: inserted})
	}
	return inserted, nil
}

func NewTableService(store ConfigStorer, log *zap.Logger, dispatcher Dispatcher) *TableService {
	return &TableService{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
	}
}
