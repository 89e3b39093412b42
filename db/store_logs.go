package db

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/db/tables"
	"github.com/jmoiron/sqlx"

	sq "github.com/Masterminds/squirrel"
)

// ErrInvalidFilter is returned for filter values that cannot be expressed as a query
var ErrInvalidFilter = errors.New("invalid filter value")

var logColumns = []string{
	"id",
	"table_name",
	"operation",
	"row_data",
	"old_data",
	"user_email",
	`"timestamp"`,
	"reverted",
}

// LogFilter narrows a log listing down, empty fields are ignored
type LogFilter struct {
	Table     string
	Operation string
	UserEmail string
}

// apply adds the fixed filters as bound predicates,
// only the free form query goes through the fiql adapter
func (f LogFilter) apply(sb sq.SelectBuilder) sq.SelectBuilder {
	if f.Table != "" {
		sb = sb.Where(sq.Eq{"table_name": f.Table})
	}
	if f.Operation != "" {
		sb = sb.Where(sq.Eq{"operation": f.Operation})
	}
	if f.UserEmail != "" {
		sb = sb.Where(sq.Eq{"user_email": f.UserEmail})
	}
	return sb
}

// RecentAuditLogs returns the newest entries, newest first
func (d *DataStore) RecentAuditLogs(ctx context.Context, limit int) ([]*tables.AuditLogTable, error) {
	entities := []*tables.AuditLogTable{}
	q := d.sb.Select(logColumns...).
		From(logTable).
		OrderBy(`"timestamp" DESC`, "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if err := d.selectStatement(ctx, &entities, q, nil); err != nil {
		return nil, errors.Wrap(err, "loading audit log")
	}
	return entities, nil
}

// AuditLogs returns a page of the audit log and the total amount of matching entries
func (d *DataStore) AuditLogs(
	ctx context.Context,
	opts ListOptions,
	filter LogFilter,
) ([]*tables.AuditLogTable, int, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	applyQuery, err := d.whereFromAdapater(logTable, opts.Query)
	if err != nil {
		return nil, 0, errors.Mark(errors.Wrap(err, "parsing query"), ErrInvalidFilter)
	}
	applyWhere := func(sb sq.SelectBuilder) sq.SelectBuilder {
		return applyQuery(filter.apply(sb))
	}

	var c int
	count := applyWhere(d.sb.Select("COUNT(*)").From(logTable))
	if err := count.RunWith(d.db).ScanContext(ctx, &c); err != nil {
		return nil, 0, err
	}
	offset := (opts.Page - 1) * opts.PageSize
	if c < offset {
		return []*tables.AuditLogTable{}, c, nil
	}
	entities := []*tables.AuditLogTable{}
	q := applyWhere(d.sb.Select(logColumns...).From(logTable))
	q = d.orderByFromAdapater(q, logTable, `"timestamp" DESC`, opts)
	if opts.PageSize > 0 {
		q = q.Offset(uint64(offset)).Limit(uint64(opts.PageSize))
	}
	if err := d.selectStatement(ctx, &entities, q, nil); err != nil {
		return nil, 0, err
	}
	return entities, c, nil
}

// AuditLogByID returns a single entry
func (d *DataStore) AuditLogByID(ctx context.Context, id int64) (*tables.AuditLogTable, error) {
	return d.auditLogByID(ctx, id, nil)
}

func (d *DataStore) auditLogByID(ctx context.Context, id int64, tx *sqlx.Tx) (*tables.AuditLogTable, error) {
	var entity tables.AuditLogTable
	q := d.sb.Select(logColumns...).From(logTable).Where(sq.Eq{"id": id})
	if tx != nil && d.dialect == "pg" {
		q = q.Suffix("FOR UPDATE")
	}
	if err := d.getStatement(ctx, &entity, q, tx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// MarkReverted flags an entry as reverted, the flag is never cleared again
func (d *DataStore) MarkReverted(ctx context.Context, id int64) error {
	return d.markReverted(ctx, id, nil)
}

func (d *DataStore) markReverted(ctx context.Context, id int64, tx *sqlx.Tx) error {
	up := d.sb.Update(logTable).
		Set("reverted", true).
		Where(sq.Eq{"id": id})
	res, err := d.execStatement(ctx, up, tx)
	if err != nil {
		return errors.Wrapf(err, "marking entry %d reverted", id)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
