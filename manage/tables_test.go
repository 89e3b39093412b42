package manage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/israelmw/QuickAudit/db"
	"github.com/israelmw/QuickAudit/db/tables"
	"github.com/israelmw/QuickAudit/events/event"
	"github.com/israelmw/QuickAudit/manage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func configRows(enabled map[string]bool, names ...string) []*tables.QuickAuditConfigTable {
	rows := make([]*tables.QuickAuditConfigTable, 0, len(names))
	for _, n := range names {
		rows = append(rows, &tables.QuickAuditConfigTable{
			ID:           uuid.New(),
			TableName:    n,
			AuditEnabled: enabled[n],
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return rows
}

func TestTableList(t *testing.T) {
	assert := assert.New(t)
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("TableConfigs", ctx).Return(configRows(map[string]bool{"orders": true}, "customers", "orders"), nil)
	list, err := service.List(ctx)
	assert.NoError(err)
	if assert.Len(list, 2) {
		assert.Equal("customers", list[0].TableName)
		assert.False(list[0].AuditEnabled)
		assert.Equal("orders", list[1].TableName)
		assert.True(list[1].AuditEnabled)
	}
}

func TestToggleDispatchesEvent(t *testing.T) {
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("TableConfigByName", ctx, "orders").Return(configRows(nil, "orders")[0], nil)
	store.On("SetAuditEnabled", ctx, "orders", true).Return(nil)
	dispatcher.On("Dispatch", ctx, &event.TableAuditToggled{Table: "orders", Enabled: true, By: "ops@example.com"}).Return()

	assert.NoError(t, service.Toggle(ctx, "orders", true, "ops@example.com"))
}

func TestToggleUnknownTable(t *testing.T) {
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("TableConfigByName", ctx, "nope").Return(nil, db.ErrNotFound)
	assert.ErrorIs(t, service.Toggle(ctx, "nope", true, "System"), ErrUnknownTable)
}

func TestToggleStoreFailureDoesNotDispatch(t *testing.T) {
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("TableConfigByName", ctx, "orders").Return(configRows(nil, "orders")[0], nil)
	store.On("SetAuditEnabled", ctx, "orders", false).Return(errors.New("permission denied"))
	assert.EqualError(t, service.Toggle(ctx, "orders", false, "System"), "permission denied")
}

func TestEnableAll(t *testing.T) {
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("SetAllAuditEnabled", ctx).Return(nil)
	dispatcher.On("Dispatch", ctx, &event.AllAuditsEnabled{By: "System"}).Return()
	assert.NoError(t, service.EnableAll(ctx, "System"))
}

func TestSyncAddsMissingTables(t *testing.T) {
	assert := assert.New(t)
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("SchemaTables", ctx).Return([]string{"customers", "invoices", "orders"}, nil)
	store.On("TableConfigs", ctx).Return(configRows(nil, "orders"), nil)
	store.On("InsertMissingTableConfigs", ctx, []string{"customers", "invoices"}).Return([]string{"customers", "invoices"}, nil)
	dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(ev *event.TablesDiscovered) bool {
		return len(ev.Tables) == 2
	})).Return()

	inserted, err := service.Sync(ctx)
	assert.NoError(err)
	assert.Equal([]string{"customers", "invoices"}, inserted)
}

func TestSyncNothingMissing(t *testing.T) {
	store := mocks.NewConfigStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	ctx := context.Background()
	service := NewTableService(store, zaptest.NewLogger(t), dispatcher)

	store.On("SchemaTables", ctx).Return([]string{"orders"}, nil)
	store.On("TableConfigs", ctx).Return(configRows(nil, "orders"), nil)

	inserted, err := service.Sync(ctx)
	assert.NoError(t, err)
	assert.Empty(t, inserted)
}
