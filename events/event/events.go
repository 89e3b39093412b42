package event

import (
	"time"

	"github.com/israelmw/QuickAudit/events"
)

const (
	TableAuditToggledEvent  events.EventName = "table_audit_toggled"
	AllAuditsEnabledEvent   events.EventName = "all_audits_enabled"
	TablesDiscoveredEvent   events.EventName = "tables_discovered"
	ChangeRevertedEvent     events.EventName = "change_reverted"
	ChangeRevertFailedEvent events.EventName = "change_revert_failed"
)

// All lists every event name, used to register catch-all listeners
var All = []events.EventName{
	TableAuditToggledEvent,
	AllAuditsEnabledEvent,
	TablesDiscoveredEvent,
	ChangeRevertedEvent,
	ChangeRevertFailedEvent,
}

type TableAuditToggled struct {
	Table   string `json:"table"`
	Enabled bool   `json:"enabled"`
	By      string `json:"by"`
}

func (*TableAuditToggled) Name() events.EventName { return TableAuditToggledEvent }

type AllAuditsEnabled struct {
	By string `json:"by"`
}

func (*AllAuditsEnabled) Name() events.EventName { return AllAuditsEnabledEvent }

// TablesDiscovered is raised when schema tables without configuration were added
type TablesDiscovered struct {
	Tables []string `json:"tables"`
}

func (*TablesDiscovered) Name() events.EventName { return TablesDiscoveredEvent }

type ChangeReverted struct {
	EntryID    int64     `json:"entry_id"`
	Table      string    `json:"table"`
	Operation  string    `json:"operation"`
	Summary    string    `json:"summary"`
	By         string    `json:"by"`
	RevertedAt time.Time `json:"reverted_at"`
}

func (*ChangeReverted) Name() events.EventName { return ChangeRevertedEvent }

type ChangeRevertFailed struct {
	EntryID int64  `json:"entry_id"`
	Table   string `json:"table"`
	Reason  string `json:"reason"`
	By      string `json:"by"`
}

func (*ChangeRevertFailed) Name() events.EventName { return ChangeRevertFailedEvent }
