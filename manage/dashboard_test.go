package manage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/manage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func newDashboard(t *testing.T) (*DashboardService, *mocks.ConfigStorer, *mocks.LogStorer, *mocks.Dispatcher) {
	configs := mocks.NewConfigStorer(t)
	logs := mocks.NewLogStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	logger := zaptest.NewLogger(t)
	cfg := testConfig()
	d := NewDashboardService(
		NewTableService(configs, logger, dispatcher),
		NewLogService(logs, logger, cfg, dispatcher),
		configs,
		logger,
		cfg,
	)
	return d, configs, logs, dispatcher
}

func TestOverviewReconcilesOnce(t *testing.T) {
	assert := assert.New(t)
	d, configs, logs, dispatcher := newDashboard(t)
	ctx := context.Background()
	now := time.Now()
	d.now = func() time.Time { return now }

	configs.On("SchemaTables", ctx).Return([]string{"customers", "orders"}, nil)
	configs.On("TableConfigs", ctx).Return(configRows(map[string]bool{"orders": true}, "orders"), nil).Once()
	configs.On("InsertMissingTableConfigs", ctx, []string{"customers"}).Return([]string{"customers"}, nil)
	configs.On("TableConfigs", ctx).Return(configRows(map[string]bool{"orders": true}, "customers", "orders"), nil).Once()
	dispatcher.On("Dispatch", ctx, mock.Anything).Return().Once()
	logs.On("RecentAuditLogs", ctx, 100).Return(logRows(now), nil)

	o, err := d.Overview(ctx, audit.Filter{Operation: audit.OperationDelete})
	assert.NoError(err)
	assert.True(o.SchemaAvailable)
	assert.Equal(audit.Stats{TotalTables: 2, EnabledTables: 1, TotalEvents: 3, RecentEvents: 1}, o.Stats)
	assert.True(o.Active)
	assert.Equal(30, o.RetentionDays)
	assert.Len(o.Tables, 2)
	assert.Equal(3, o.Feed.Total)
	if assert.Len(o.Feed.Entries, 1) {
		assert.Equal("Record deleted", o.Feed.Entries[0].Summary)
	}
}

func TestOverviewFallsBackToConfiguration(t *testing.T) {
	assert := assert.New(t)
	d, configs, logs, _ := newDashboard(t)
	ctx := context.Background()

	configs.On("SchemaTables", ctx).Return(nil, errors.New("function get_all_tables() does not exist"))
	configs.On("TableConfigs", ctx).Return(configRows(nil, "a", "b", "c"), nil)
	logs.On("RecentAuditLogs", ctx, 100).Return(nil, nil)

	o, err := d.Overview(ctx, audit.Filter{})
	assert.NoError(err)
	assert.False(o.SchemaAvailable)
	assert.Equal(3, o.Stats.TotalTables)
	assert.False(o.Active)
	assert.Empty(o.Feed.Entries)
}

func TestOverviewRendersWhenAddingMissingTablesFails(t *testing.T) {
	assert := assert.New(t)
	d, configs, logs, _ := newDashboard(t)
	ctx := context.Background()

	configs.On("SchemaTables", ctx).Return([]string{"customers", "orders"}, nil)
	configs.On("TableConfigs", ctx).Return(configRows(map[string]bool{"orders": true}, "orders"), nil).Once()
	configs.On("InsertMissingTableConfigs", ctx, []string{"customers"}).
		Return(nil, errors.New("permission denied for table quickaudit_config"))
	logs.On("RecentAuditLogs", ctx, 100).Return(nil, nil)

	o, err := d.Overview(ctx, audit.Filter{})
	if assert.NoError(err) {
		assert.True(o.SchemaAvailable)
		assert.Len(o.Tables, 1)
		assert.Equal("orders", o.Tables[0].TableName)
		assert.Equal(2, o.Stats.TotalTables)
		assert.Equal(1, o.Stats.EnabledTables)
	}
}
