package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireTableName(t *testing.T) {
	assert := assert.New(t)
	assert.Error(requireTableName(&tablesCommand, nil))
	assert.Error(requireTableName(&tablesCommand, []string{""}))
	assert.NoError(requireTableName(&tablesCommand, []string{"orders"}))
	assert.NoError(requireTableName(&tablesCommand, []string{"order-items"}))
}
