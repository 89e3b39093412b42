package tables

import "time"

// AuditLogTable represents the audit_log table written by the capture triggers
type AuditLogTable struct {
	ID        int64     `db:"id"         fiql:"id,db:id"`
	TableName string    `db:"table_name" fiql:"table_name,db:table_name"`
	Operation string    `db:"operation"  fiql:"operation,db:operation"`
	RowData   JSONImage `db:"row_data"`
	OldData   JSONImage `db:"old_data"`
	UserEmail *string   `db:"user_email" fiql:"user_email,db:user_email"`
	Timestamp time.Time `db:"timestamp"  fiql:"timestamp,db:timestamp"`
	Reverted  bool      `db:"reverted"   fiql:"reverted,db:reverted"`
}
