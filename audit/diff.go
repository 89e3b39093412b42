package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/jeremywohl/flatten/v2"
)

const (
	emptyValue   = "—"
	removedValue = "(removed)"
)

// FieldChange is the change of a single column between two row images
type FieldChange struct {
	Field   string      `json:"field"`
	Old     interface{} `json:"old"`
	New     interface{} `json:"new,omitempty"`
	Removed bool        `json:"removed,omitempty"`
}

func (c FieldChange) String() string {
	if c.Removed {
		return fmt.Sprintf("%s: %s → %s", c.Field, FormatValue(c.Old), removedValue)
	}
	return fmt.Sprintf("%s: %s → %s", c.Field, FormatValue(c.Old), FormatValue(c.New))
}

// FormatValue renders a row image value for display.
// Missing values render as an em dash, objects and arrays as indented JSON.
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return emptyValue
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case map[string]interface{}, RowImage, []interface{}:
		return marshalIndent(t)
	}
	return fmt.Sprint(v)
}

func marshalIndent(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Diff computes the per-field changes going from old to new.
// It returns nil if either image is missing.
func Diff(old, new RowImage) []FieldChange {
	if old == nil || new == nil {
		return nil
	}
	changes := make([]FieldChange, 0)
	for _, k := range sortedKeys(new) {
		if !reflect.DeepEqual(old[k], new[k]) {
			changes = append(changes, FieldChange{Field: k, Old: old[k], New: new[k]})
		}
	}
	for _, k := range sortedKeys(old) {
		if _, ok := new[k]; !ok {
			changes = append(changes, FieldChange{Field: k, Old: old[k], Removed: true})
		}
	}
	return changes
}

// DiffText joins the changes between both images, ok is false if nothing changed
func DiffText(old, new RowImage) (string, bool) {
	changes := Diff(old, new)
	if len(changes) == 0 {
		return "", false
	}
	parts := make([]string, len(changes))
	for i := range changes {
		parts[i] = changes[i].String()
	}
	return strings.Join(parts, ", "), true
}

// FlatDiff is like Diff but flattens nested objects first,
// so a change inside a json column is reported as `column.key`.
func FlatDiff(old, new RowImage) ([]FieldChange, error) {
	if old == nil || new == nil {
		return nil, nil
	}
	flatOld, err := flatten.Flatten(old, "", flatten.DotStyle)
	if err != nil {
		return nil, err
	}
	flatNew, err := flatten.Flatten(new, "", flatten.DotStyle)
	if err != nil {
		return nil, err
	}
	return Diff(flatOld, flatNew), nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
