package db

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
)

// procedures covers the operations the backend may provide as stored functions
type procedures interface {
	schemaTables(ctx context.Context) ([]string, error)
	toggle(ctx context.Context, table string, enable bool) error
	enableAll(ctx context.Context) error
}

// rpcProcedures calls get_all_tables, toggle_table_audit and enable_all_audits,
// which also install or drop the capture triggers
type rpcProcedures struct {
	db  *sqlx.DB
	log *zap.Logger
}

func (r *rpcProcedures) schemaTables(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, "SELECT table_name FROM get_all_tables()"); err != nil {
		return nil, errors.Wrap(err, "get_all_tables")
	}
	return names, nil
}

func (r *rpcProcedures) toggle(ctx context.Context, table string, enable bool) error {
	_, err := r.db.ExecContext(ctx, "SELECT toggle_table_audit(table_name => $1, enable => $2)", table, enable)
	if err != nil {
		return errors.Wrapf(err, "toggle_table_audit(%q, %t)", table, enable)
	}
	r.log.Debug("toggled table audit", zap.String("table", table), zap.Bool("enable", enable))
	return nil
}

func (r *rpcProcedures) enableAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "SELECT enable_all_audits()"); err != nil {
		return errors.Wrap(err, "enable_all_audits")
	}
	return nil
}

// directProcedures reads the catalog and updates quickaudit_config itself
type directProcedures struct {
	d *DataStore
}

func (p *directProcedures) schemaTables(ctx context.Context) ([]string, error) {
	var q sq.SelectBuilder
	switch p.d.dialect {
	case "sqlite":
		q = p.d.sb.Select("name").
			From("sqlite_master").
			Where(sq.Eq{"type": "table"}).
			Where(sq.NotLike{"name": "sqlite_%"}).
			Where(sq.NotEq{"name": ownTables}).
			OrderBy("name")
	default:
		q = p.d.sb.Select("table_name").
			From("information_schema.tables").
			Where(sq.Eq{"table_schema": "public", "table_type": "BASE TABLE"}).
			Where(sq.NotEq{"table_name": ownTables}).
			OrderBy("table_name")
	}
	names := []string{}
	if err := p.d.selectStatement(ctx, &names, q, nil); err != nil {
		return nil, errors.Wrap(err, "listing schema tables")
	}
	return names, nil
}

func (p *directProcedures) toggle(ctx context.Context, table string, enable bool) error {
	up := p.d.sb.Update(configTable).
		Set("audit_enabled", enable).
		Where(sq.Eq{"table_name": table})
	res, err := p.d.execStatement(ctx, up, nil)
	if err != nil {
		return errors.Wrapf(err, "updating configuration of %q", table)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *directProcedures) enableAll(ctx context.Context) error {
	up := p.d.sb.Update(configTable).Set("audit_enabled", true)
	if _, err := p.d.execStatement(ctx, up, nil); err != nil {
		return errors.Wrap(err, "enabling all audits")
	}
	return nil
}
