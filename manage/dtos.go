package manage

import (
	"net/http"
	"time"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/db/tables"
)

// PaginationResponse is a single page of a list
type PaginationResponse struct {
	Total   int         `json:"total"`
	Entries interface{} `json:"entries"`
}

func (*PaginationResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type TableConfigDTO struct {
	ID           string    `json:"id"`
	TableName    string    `json:"table_name"`
	AuditEnabled bool      `json:"audit_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

func (*TableConfigDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func tableConfigFromDB(t *tables.QuickAuditConfigTable) audit.TableConfig {
	return audit.TableConfig{
		ID:           t.ID,
		TableName:    t.TableName,
		AuditEnabled: t.AuditEnabled,
		CreatedAt:    t.CreatedAt,
	}
}

func tableConfigDTO(c audit.TableConfig) *TableConfigDTO {
	return &TableConfigDTO{
		ID:           c.ID.String(),
		TableName:    c.TableName,
		AuditEnabled: c.AuditEnabled,
		CreatedAt:    c.CreatedAt,
	}
}

type AuditLogDTO struct {
	ID        int64               `json:"id"`
	TableName string              `json:"table_name"`
	Operation string              `json:"operation"`
	RowData   audit.RowImage      `json:"row_data"`
	OldData   audit.RowImage      `json:"old_data"`
	UserEmail string              `json:"user_email,omitempty"`
	Actor     string              `json:"actor"`
	Timestamp time.Time           `json:"timestamp"`
	Reverted  bool                `json:"reverted"`
	Summary   string              `json:"summary"`
	Changes   []audit.FieldChange `json:"changes,omitempty"`
}

func (*AuditLogDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func entryFromDB(t *tables.AuditLogTable) audit.Entry {
	e := audit.Entry{
		ID:        t.ID,
		TableName: t.TableName,
		Operation: audit.Operation(t.Operation),
		RowData:   audit.RowImage(t.RowData),
		OldData:   audit.RowImage(t.OldData),
		Timestamp: t.Timestamp,
		Reverted:  t.Reverted,
	}
	if t.UserEmail != nil {
		e.UserEmail = *t.UserEmail
	}
	return e
}

func auditLogDTO(e audit.Entry) *AuditLogDTO {
	return &AuditLogDTO{
		ID:        e.ID,
		TableName: e.TableName,
		Operation: string(e.Operation),
		RowData:   e.RowData,
		OldData:   e.OldData,
		UserEmail: e.UserEmail,
		Actor:     e.Actor(),
		Timestamp: e.Timestamp,
		Reverted:  e.Reverted,
		Summary:   e.Summary(),
	}
}

// FeedDTO is the filtered change feed
type FeedDTO struct {
	Entries    []*AuditLogDTO `json:"entries"`
	Total      int            `json:"total"`
	Tables     []string       `json:"tables"`
	Operations []string       `json:"operations"`
}

func (*FeedDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// OverviewDTO is everything the dashboard shows on load
type OverviewDTO struct {
	Name          string            `json:"name"`
	Stats         audit.Stats       `json:"stats"`
	Active        bool              `json:"active"`
	RetentionDays int               `json:"retention_days"`
	Tables        []*TableConfigDTO `json:"tables"`
	Feed          *FeedDTO          `json:"feed"`
	// SchemaAvailable is false when the schema tables could not be listed
	SchemaAvailable bool `json:"schema_available"`
}

func (*OverviewDTO) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
