package db

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/audit"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
)

// ApplyRevert runs the compensating write of plan and flags the entry as reverted.
// Both happen in one transaction, a failed write leaves the entry untouched.
func (d *DataStore) ApplyRevert(ctx context.Context, plan *audit.RevertPlan, entryID int64) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollBack(tx, d)

	entry, err := d.auditLogByID(ctx, entryID, tx)
	if err != nil {
		return err
	}
	if entry.Reverted {
		return audit.ErrAlreadyReverted
	}

	if err := d.compensate(ctx, plan, tx); err != nil {
		return err
	}
	if err := d.markReverted(ctx, entryID, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing revert")
	}
	d.log.Info("reverted change",
		zap.Int64("entry", entryID),
		zap.String("table", plan.Table),
		zap.Stringer("write", plan.Kind),
	)
	return nil
}

func (d *DataStore) compensate(ctx context.Context, plan *audit.RevertPlan, tx *sqlx.Tx) error {
	table := quoteIdent(plan.Table)
	key := quoteIdent(plan.PrimaryKey)
	switch plan.Kind {
	case audit.WriteDelete:
		keyValue, err := columnValue(plan.KeyValue)
		if err != nil {
			return err
		}
		del := d.sb.Delete(table).Where(sq.Eq{key: keyValue})
		return d.expectAffected(d.execStatement(ctx, del, tx))
	case audit.WriteUpdate:
		keyValue, err := columnValue(plan.KeyValue)
		if err != nil {
			return err
		}
		values, err := columnValues(plan.Values)
		if err != nil {
			return err
		}
		up := d.sb.Update(table).SetMap(values).Where(sq.Eq{key: keyValue})
		return d.expectAffected(d.execStatement(ctx, up, tx))
	case audit.WriteInsert:
		columns := sortedColumns(plan.Values)
		quoted := make([]string, len(columns))
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			v, err := columnValue(plan.Values[c])
			if err != nil {
				return err
			}
			quoted[i] = quoteIdent(c)
			values[i] = v
		}
		ins := d.sb.Insert(table).Columns(quoted...).Values(values...)
		_, err := d.execStatement(ctx, ins, tx)
		return errors.Wrapf(err, "re-inserting row into %s", plan.Table)
	}
	return errors.Newf("unknown compensating write %v", plan.Kind)
}

func (d *DataStore) expectAffected(res interface{ RowsAffected() (int64, error) }, err error) error {
	if err != nil {
		return errors.Wrap(err, "compensating write")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNothingToRevert
	}
	return nil
}

func sortedColumns(img audit.RowImage) []string {
	columns := make([]string, 0, len(img))
	for c := range img {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}

func columnValues(img audit.RowImage) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(img))
	for c, v := range img {
		cv, err := columnValue(v)
		if err != nil {
			return nil, err
		}
		values[quoteIdent(c)] = cv
	}
	return values, nil
}

// columnValue converts a decoded json value back into a driver argument,
// nested objects and arrays are written as json text
func columnValue(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return t.String(), nil
		}
		return f, nil
	case map[string]interface{}, []interface{}, audit.RowImage:
		data, err := json.Marshal(t)
		if err != nil {
			return nil, errors.Wrap(err, "encoding nested value")
		}
		return string(data), nil
	}
	return v, nil
}
