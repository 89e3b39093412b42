package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/israelmw/QuickAudit/db/tables"
	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
)

var configColumns = []string{"id", "table_name", "audit_enabled", "created_at"}

// TableConfigs returns all configuration rows ordered by table name
func (d *DataStore) TableConfigs(ctx context.Context) ([]*tables.QuickAuditConfigTable, error) {
	entities := []*tables.QuickAuditConfigTable{}
	q := d.sb.Select(configColumns...).From(configTable).OrderBy("table_name ASC")
	if err := d.selectStatement(ctx, &entities, q, nil); err != nil {
		return nil, errors.Wrap(err, "loading table configuration")
	}
	return entities, nil
}

// TableConfigByName returns the configuration row of a single table
func (d *DataStore) TableConfigByName(
	ctx context.Context,
	name string,
) (*tables.QuickAuditConfigTable, error) {
	var entity tables.QuickAuditConfigTable
	q := d.sb.Select(configColumns...).From(configTable).Where(sq.Eq{"table_name": name})
	if err := d.getStatement(ctx, &entity, q, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// InsertTableConfig adds a configuration row, a second row for the same table is rejected
func (d *DataStore) InsertTableConfig(
	ctx context.Context,
	name string,
	enabled bool,
) (uuid.UUID, error) {
	exists, err := d.exists(ctx, configTable, sq.Eq{"table_name": name}, nil)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, ErrAlreadyExists
	}
	id := uuid.New()
	ins := d.sb.Insert(configTable).
		Columns(configColumns...).
		Values(id, name, enabled, time.Now().UTC())
	if _, err := d.execStatement(ctx, ins, nil); err != nil {
		return uuid.Nil, errors.Wrapf(err, "inserting configuration for %q", name)
	}
	return id, nil
}

// InsertMissingTableConfigs adds a disabled configuration row for every name that has none yet.
// It returns the names that were actually inserted.
func (d *DataStore) InsertMissingTableConfigs(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer rollBack(tx, d)

	inserted := make([]string, 0, len(names))
	now := time.Now().UTC()
	for _, name := range names {
		exists, err := d.exists(ctx, configTable, sq.Eq{"table_name": name}, tx)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		ins := d.sb.Insert(configTable).
			Columns(configColumns...).
			Values(uuid.New(), name, false, now)
		if _, err := d.execStatement(ctx, ins, tx); err != nil {
			return nil, errors.Wrapf(err, "inserting configuration for %q", name)
		}
		inserted = append(inserted, name)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if len(inserted) > 0 {
		d.log.Info("added missing table configurations", zap.Strings("tables", inserted))
	}
	return inserted, nil
}

// SetAuditEnabled switches auditing of a single table
func (d *DataStore) SetAuditEnabled(ctx context.Context, name string, enabled bool) error {
	return d.procedures.toggle(ctx, name, enabled)
}

// SetAllAuditEnabled enables auditing of every configured table
func (d *DataStore) SetAllAuditEnabled(ctx context.Context) error {
	return d.procedures.enableAll(ctx)
}

// SchemaTables lists the tables of the audited schema
func (d *DataStore) SchemaTables(ctx context.Context) ([]string, error) {
	return d.procedures.schemaTables(ctx)
}
