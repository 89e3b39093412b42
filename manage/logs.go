package manage

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/events/event"
	"go.uber.org/zap"
)

// ErrUnknownEntry is returned for audit log ids that do not exist
var ErrUnknownEntry = errors.New("audit log entry does not exist")

// LogService reads the change feed and reverts changes
type LogService struct {
	store      LogStorer
	log        *zap.Logger
	cfg        *config.Configuration
	dispatcher Dispatcher
}

func (l *LogService) limit() int {
	if l.cfg.Behaviour == nil || l.cfg.Behaviour.LogLimit <= 0 {
		return 100
	}
	return l.cfg.Behaviour.LogLimit
}

func (l *LogService) primaryKey() string {
	if l.cfg.Behaviour == nil || l.cfg.Behaviour.PrimaryKey == "" {
		return "id"
	}
	return l.cfg.Behaviour.PrimaryKey
}

func (l *LogService) recentEntries(ctx context.Context) ([]audit.Entry, error) {
	rows, err := l.store.RecentAuditLogs(ctx, l.limit())
	if err != nil {
		return nil, err
	}
	entries := make([]audit.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, entryFromDB(r))
	}
	return entries, nil
}

func feed(entries []audit.Entry, filter audit.Filter) *FeedDTO {
	filtered := audit.ApplyFilter(entries, filter)
	dto := &FeedDTO{
		Entries:    make([]*AuditLogDTO, 0, len(filtered)),
		Total:      len(entries),
		Tables:     audit.UniqueTables(entries),
		Operations: []string{},
	}
	for _, e := range filtered {
		dto.Entries = append(dto.Entries, auditLogDTO(e))
	}
	for _, o := range audit.UniqueOperations(entries) {
		dto.Operations = append(dto.Operations, string(o))
	}
	return dto
}

// Recent returns the newest entries narrowed down by filter.
// Total, tables and operations always describe the unfiltered feed.
func (l *LogService) Recent(ctx context.Context, filter audit.Filter) (*FeedDTO, error) {
	entries, err := l.recentEntries(ctx)
	if err != nil {
		return nil, err
	}
	return feed(entries, filter), nil
}

// List returns a page of the complete audit log
func (l *LogService) List(
	ctx context.Context,
	page int,
	pageSize int,
	q string,
	sort string,
	filter db.LogFilter,
) (*PaginationResponse, error) {
	rows, total, err := l.store.AuditLogs(
		ctx,
		db.ListOptions{Page: page, PageSize: pageSize, Query: q, Sort: sort},
		filter,
	)
	if err != nil {
		return nil, err
	}
	dtos := make([]*AuditLogDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, auditLogDTO(entryFromDB(r)))
	}
	return &PaginationResponse{
		Total:   total,
		Entries: dtos,
	}, nil
}

func (l *LogService) entry(ctx context.Context, id int64) (audit.Entry, error) {
	row, err := l.store.AuditLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return audit.Entry{}, ErrUnknownEntry
		}
		return audit.Entry{}, err
	}
	return entryFromDB(row), nil
}

// ByID returns a single entry including its field changes,
// nested values are compared per key
func (l *LogService) ByID(ctx context.Context, id int64) (*AuditLogDTO, error) {
	e, err := l.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := auditLogDTO(e)
	if e.Operation == audit.OperationUpdate {
		changes, err := audit.FlatDiff(e.OldData, e.RowData)
		if err != nil {
			l.log.Warn("flattening row images failed", zap.Int64("entry", id), zap.Error(err))
			changes = audit.Diff(e.OldData, e.RowData)
		}
		dto.Changes = changes
	}
	return dto, nil
}

// Revert undoes the change of an entry with a compensating write and flags it as reverted
func (l *LogService) Revert(ctx context.Context, id int64, by string) error {
	e, err := l.entry(ctx, id)
	if err != nil {
		return err
	}
	plan, err := audit.PlanRevert(e, l.primaryKey())
	if err == nil {
		err = l.store.ApplyRevert(ctx, plan, id)
	}
	if err != nil {
		l.log.Warn("revert failed", zap.Int64("entry", id), zap.String("table", e.TableName), zap.Error(err))
		l.dispatcher.Dispatch(ctx, &event.ChangeRevertFailed{
			EntryID: id,
			Table:   e.TableName,
			Reason:  err.Error(),
			By:      by,
		})
		return err
	}
	l.dispatcher.Dispatch(ctx, &event.ChangeReverted{
		EntryID:    id,
		Table:      e.TableName,
		Operation:  string(e.Operation),
		Summary:    e.Summary(),
		By:         by,
		RevertedAt: time.Now().UTC(),
	})
	return nil
}

func NewLogService(
	store LogStorer,
	log *zap.Logger,
	cfg *config.Configuration,
	dispatcher Dispatcher,
) *LogService {
	return &LogService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}
