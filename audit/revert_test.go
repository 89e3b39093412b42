package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanRevertInsertDeletesNewRow(t *testing.T) {
	assert := assert.New(t)
	plan, err := PlanRevert(Entry{
		TableName: "orders",
		Operation: OperationInsert,
		RowData:   RowImage{"id": float64(7), "sku": "A-100"},
	}, "id")
	assert.NoError(err)
	if assert.NotNil(plan) {
		assert.Equal(WriteDelete, plan.Kind)
		assert.Equal("orders", plan.Table)
		assert.Equal(float64(7), plan.KeyValue)
		assert.Nil(plan.Values)
	}
}

func TestPlanRevertUpdateRestoresOldImage(t *testing.T) {
	assert := assert.New(t)
	old := RowImage{"id": float64(7), "sku": "A-100"}
	plan, err := PlanRevert(Entry{
		TableName: "orders",
		Operation: OperationUpdate,
		RowData:   RowImage{"id": float64(8), "sku": "A-200"},
		OldData:   old,
	}, "id")
	assert.NoError(err)
	if assert.NotNil(plan) {
		assert.Equal(WriteUpdate, plan.Kind)
		// the current row carries the new key
		assert.Equal(float64(8), plan.KeyValue)
		assert.Equal(old, plan.Values)
	}
}

func TestPlanRevertDeleteReinsertsOldImage(t *testing.T) {
	assert := assert.New(t)
	old := RowImage{"id": float64(7), "sku": "A-100"}
	plan, err := PlanRevert(Entry{TableName: "orders", Operation: OperationDelete, OldData: old}, "id")
	assert.NoError(err)
	if assert.NotNil(plan) {
		assert.Equal(WriteInsert, plan.Kind)
		assert.Equal(old, plan.Values)
	}
}

func TestPlanRevertErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := PlanRevert(Entry{TableName: "orders", Operation: OperationInsert, RowData: RowImage{"id": 1}, Reverted: true}, "id")
	assert.ErrorIs(err, ErrAlreadyReverted)

	_, err = PlanRevert(Entry{TableName: "orders", Operation: OperationInsert}, "id")
	assert.ErrorIs(err, ErrMissingImage)

	_, err = PlanRevert(Entry{TableName: "orders", Operation: OperationInsert, RowData: RowImage{"sku": "x"}}, "id")
	assert.ErrorIs(err, ErrMissingPrimaryKey)

	_, err = PlanRevert(Entry{TableName: "orders", Operation: OperationUpdate, RowData: RowImage{"id": 1}}, "id")
	assert.ErrorIs(err, ErrMissingImage)

	_, err = PlanRevert(Entry{TableName: "orders", Operation: OperationDelete, OldData: RowImage{}}, "id")
	assert.ErrorIs(err, ErrMissingImage)

	_, err = PlanRevert(Entry{TableName: "orders; drop table x", Operation: OperationDelete, OldData: RowImage{"id": 1}}, "id")
	assert.ErrorIs(err, ErrInvalidIdentifier)

	_, err = PlanRevert(Entry{TableName: "orders", Operation: OperationDelete, OldData: RowImage{"id": 1, "bad column": 2}}, "id")
	assert.ErrorIs(err, ErrInvalidIdentifier)

	_, err = PlanRevert(Entry{TableName: "orders", Operation: "TRUNCATE"}, "id")
	assert.ErrorIs(err, ErrUnknownOperation)
}

func TestValidIdentifier(t *testing.T) {
	assert := assert.New(t)
	assert.True(ValidIdentifier("orders"))
	assert.True(ValidIdentifier("_order_items2"))
	assert.False(ValidIdentifier("2orders"))
	assert.False(ValidIdentifier("public.orders"))
	assert.False(ValidIdentifier(""))
	assert.False(ValidIdentifier("a23456789012345678901234567890123456789012345678901234567890abcd"))
}
