package audit

import (
	"encoding/json"
	"strings"
)

// Filter narrows the change feed, zero fields match everything
type Filter struct {
	Search    string
	Table     string
	Operation Operation
}

// IsZero reports whether the filter matches every entry
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Table == "" && f.Operation == ""
}

// Match reports whether the entry passes the filter.
// The search term is matched case-sensitively against the table name,
// the acting user and the JSON encoding of the new row image.
func (f Filter) Match(e Entry) bool {
	if f.Search != "" {
		if !strings.Contains(e.TableName, f.Search) &&
			!strings.Contains(e.UserEmail, f.Search) &&
			!strings.Contains(imageJSON(e.RowData), f.Search) {
			return false
		}
	}
	if f.Table != "" && e.TableName != f.Table {
		return false
	}
	if f.Operation != "" && e.Operation != f.Operation {
		return false
	}
	return true
}

// ApplyFilter returns the matching entries in their original order
func ApplyFilter(entries []Entry, f Filter) []Entry {
	if f.IsZero() {
		return entries
	}
	res := make([]Entry, 0, len(entries))
	for i := range entries {
		if f.Match(entries[i]) {
			res = append(res, entries[i])
		}
	}
	return res
}

// UniqueTables returns the distinct table names in first-seen order
func UniqueTables(entries []Entry) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for i := range entries {
		if _, ok := seen[entries[i].TableName]; ok {
			continue
		}
		seen[entries[i].TableName] = struct{}{}
		res = append(res, entries[i].TableName)
	}
	return res
}

// UniqueOperations returns the distinct operations in first-seen order
func UniqueOperations(entries []Entry) []Operation {
	seen := make(map[Operation]struct{})
	res := make([]Operation, 0)
	for i := range entries {
		if _, ok := seen[entries[i].Operation]; ok {
			continue
		}
		seen[entries[i].Operation] = struct{}{}
		res = append(res, entries[i].Operation)
	}
	return res
}

func imageJSON(img RowImage) string {
	b, err := json.Marshal(img)
	if err != nil {
		return ""
	}
	return string(b)
}
