package tables

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONImageScan(t *testing.T) {
	assert := assert.New(t)

	var img JSONImage
	assert.NoError(img.Scan(`{"id": 9007199254740993, "name": "x"}`))
	assert.Equal(json.Number("9007199254740993"), img["id"])
	assert.Equal("x", img["name"])

	assert.NoError(img.Scan([]byte(`{"a": {"b": true}}`)))
	assert.Equal(map[string]interface{}{"b": true}, img["a"])

	assert.NoError(img.Scan(nil))
	assert.Nil(img)

	assert.NoError(img.Scan("null"))
	assert.Nil(img)

	assert.Error(img.Scan(42))
	assert.Error(img.Scan("[1,2]"))
}

func TestJSONImageValue(t *testing.T) {
	assert := assert.New(t)

	v, err := JSONImage(nil).Value()
	assert.NoError(err)
	assert.Nil(v)

	v, err = JSONImage{"id": 1}.Value()
	assert.NoError(err)
	assert.Equal(`{"id":1}`, v)
}
