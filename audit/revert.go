package audit

import (
	"regexp"

	"github.com/cockroachdb/errors"
)

var (
	// ErrAlreadyReverted is returned when planning the revert of an entry that was already reverted
	ErrAlreadyReverted = errors.New("change has already been reverted")
	// ErrMissingImage signals that the row image needed for the compensating write was not captured
	ErrMissingImage = errors.New("row image required for revert is missing")
	// ErrMissingPrimaryKey signals that the row image carries no primary key value
	ErrMissingPrimaryKey = errors.New("row image has no primary key value")
	// ErrInvalidIdentifier signals a table or column name that cannot be used in a statement
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const maxIdentifierLength = 63

// ValidIdentifier reports whether name is a plain, unquoted-safe SQL identifier
func ValidIdentifier(name string) bool {
	return len(name) <= maxIdentifierLength && identifierPattern.MatchString(name)
}

// WriteKind is the kind of compensating write
type WriteKind int

const (
	WriteDelete WriteKind = iota + 1
	WriteUpdate
	WriteInsert
)

func (k WriteKind) String() string {
	switch k {
	case WriteDelete:
		return "delete"
	case WriteUpdate:
		return "update"
	case WriteInsert:
		return "insert"
	}
	return "unknown"
}

// RevertPlan describes the compensating write that undoes a captured change
type RevertPlan struct {
	Table      string
	Kind       WriteKind
	PrimaryKey string
	// KeyValue locates the row for deletes and updates
	KeyValue interface{}
	// Values are written for updates and inserts
	Values RowImage
}

// PlanRevert computes the compensating write for an entry:
// an INSERT is undone by deleting the inserted row, an UPDATE by writing the old
// image back onto the current row and a DELETE by re-inserting the old image.
func PlanRevert(e Entry, primaryKey string) (*RevertPlan, error) {
	if e.Reverted {
		return nil, ErrAlreadyReverted
	}
	if !ValidIdentifier(e.TableName) {
		return nil, errors.Wrapf(ErrInvalidIdentifier, "table %q", e.TableName)
	}
	if !ValidIdentifier(primaryKey) {
		return nil, errors.Wrapf(ErrInvalidIdentifier, "primary key %q", primaryKey)
	}
	plan := &RevertPlan{
		Table:      e.TableName,
		PrimaryKey: primaryKey,
	}
	switch e.Operation {
	case OperationInsert:
		if e.RowData == nil {
			return nil, errors.Wrap(ErrMissingImage, "new row image")
		}
		key, ok := keyValue(e.RowData, primaryKey)
		if !ok {
			return nil, ErrMissingPrimaryKey
		}
		plan.Kind = WriteDelete
		plan.KeyValue = key
	case OperationUpdate:
		if e.OldData == nil {
			return nil, errors.Wrap(ErrMissingImage, "old row image")
		}
		key, ok := keyValue(e.RowData, primaryKey)
		if !ok {
			key, ok = keyValue(e.OldData, primaryKey)
		}
		if !ok {
			return nil, ErrMissingPrimaryKey
		}
		if err := validColumns(e.OldData); err != nil {
			return nil, err
		}
		plan.Kind = WriteUpdate
		plan.KeyValue = key
		plan.Values = e.OldData
	case OperationDelete:
		if len(e.OldData) == 0 {
			return nil, errors.Wrap(ErrMissingImage, "old row image")
		}
		if err := validColumns(e.OldData); err != nil {
			return nil, err
		}
		plan.Kind = WriteInsert
		plan.Values = e.OldData
	default:
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", e.Operation)
	}
	return plan, nil
}

func keyValue(img RowImage, primaryKey string) (interface{}, bool) {
	v, ok := img[primaryKey]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func validColumns(img RowImage) error {
	for k := range img {
		if !ValidIdentifier(k) {
			return errors.Wrapf(ErrInvalidIdentifier, "column %q", k)
		}
	}
	return nil
}
