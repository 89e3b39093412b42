package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoControl(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("ordersFAKE entry", NoControl("orders\r\nFAKE entry"))
	assert.Equal("aéb", NoControl("aé\tb"))
	assert.Equal("orders", UserInputString("table", "orders\n").String)
}
