package tables

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONImage is a nullable json object column holding a captured row image
type JSONImage map[string]interface{}

// Value returns the json encoding or NULL for a missing image
func (m JSONImage) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return driver.Value(""), err
	}
	return driver.Value(string(data)), nil
}

// Scan allows to scan a json image, NULL and json null scan to a nil image.
// Numbers are kept as json.Number so large keys survive the round trip.
func (m *JSONImage) Scan(src interface{}) error {
	var source []byte
	switch v := src.(type) {
	case string:
		source = []byte(v)
	case []byte:
		source = v
	case nil:
		*m = nil
		return nil
	default:
		return fmt.Errorf("error scanning json value: %+v", src)
	}
	source = bytes.TrimSpace(source)
	if len(source) == 0 || bytes.Equal(source, []byte("null")) {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(source))
	dec.UseNumber()
	var res map[string]interface{}
	if err := dec.Decode(&res); err != nil {
		return err
	}
	*m = res
	return nil
}
