package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func feed() []Entry {
	return []Entry{
		{ID: 1, TableName: "orders", Operation: OperationInsert, RowData: RowImage{"sku": "A-100"}, UserEmail: "ann@example.com"},
		{ID: 2, TableName: "customers", Operation: OperationUpdate, RowData: RowImage{"name": "Bob"}, OldData: RowImage{"name": "Rob"}},
		{ID: 3, TableName: "orders", Operation: OperationDelete, OldData: RowImage{"sku": "B-200"}, UserEmail: "bob@example.com"},
		{ID: 4, TableName: "invoices", Operation: OperationUpdate, RowData: RowImage{"total": float64(10)}, UserEmail: "ann@example.com"},
	}
}

func ids(entries []Entry) []int64 {
	res := make([]int64, len(entries))
	for i := range entries {
		res[i] = entries[i].ID
	}
	return res
}

func TestApplyFilterZeroMatchesAll(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(ApplyFilter(feed(), Filter{})))
}

func TestApplyFilterSearch(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int64{1, 4}, ids(ApplyFilter(feed(), Filter{Search: "ann@"})))
	assert.Equal([]int64{1}, ids(ApplyFilter(feed(), Filter{Search: "A-100"})))
	assert.Equal([]int64{2}, ids(ApplyFilter(feed(), Filter{Search: "custom"})))
	// the old image of a delete is not searched
	assert.Empty(ApplyFilter(feed(), Filter{Search: "B-200"}))
	// matching is case-sensitive
	assert.Empty(ApplyFilter(feed(), Filter{Search: "ORDERS"}))
}

func TestApplyFilterTableAndOperation(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int64{1, 3}, ids(ApplyFilter(feed(), Filter{Table: "orders"})))
	assert.Equal([]int64{2, 4}, ids(ApplyFilter(feed(), Filter{Operation: OperationUpdate})))
	assert.Equal([]int64{3}, ids(ApplyFilter(feed(), Filter{Table: "orders", Operation: OperationDelete})))
	assert.Equal([]int64{4}, ids(ApplyFilter(feed(), Filter{Search: "ann", Operation: OperationUpdate})))
}

func TestUniqueTablesAndOperations(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"orders", "customers", "invoices"}, UniqueTables(feed()))
	assert.Equal([]Operation{OperationInsert, OperationUpdate, OperationDelete}, UniqueOperations(feed()))
	assert.Empty(UniqueTables(nil))
}

func TestComputeStats(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	configs := []TableConfig{
		{TableName: "orders", AuditEnabled: true},
		{TableName: "customers"},
	}
	entries := []Entry{
		{Timestamp: now.Add(-time.Hour)},
		{Timestamp: now.Add(-RecentWindow)},
		{Timestamp: now.Add(-48 * time.Hour)},
	}

	s := ComputeStats(configs, []string{"orders", "customers", "invoices"}, entries, now.Add(-RecentWindow))
	assert.Equal(3, s.TotalTables)
	assert.Equal(1, s.EnabledTables)
	assert.Equal(3, s.TotalEvents)
	assert.Equal(1, s.RecentEvents)
	assert.True(s.Active())

	s = ComputeStats(configs[1:], nil, nil, now)
	assert.Equal(1, s.TotalTables)
	assert.Equal(0, s.EnabledTables)
	assert.False(s.Active())
}

func TestMissingTables(t *testing.T) {
	assert := assert.New(t)
	configs := []TableConfig{{TableName: "orders"}}
	assert.Equal([]string{"customers", "invoices"}, MissingTables(configs, []string{"orders", "customers", "invoices", "customers"}))
	assert.Empty(MissingTables(configs, []string{"orders"}))
	assert.Empty(MissingTables(configs, nil))
}
