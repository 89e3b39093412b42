package audit

import "time"

// RecentWindow is the default window counted as recent activity
const RecentWindow = 24 * time.Hour

// Stats are the figures shown on top of the dashboard
type Stats struct {
	TotalTables   int `json:"total_tables"`
	EnabledTables int `json:"enabled_tables"`
	TotalEvents   int `json:"total_events"`
	RecentEvents  int `json:"recent_events"`
}

// Active reports whether at least one table is being audited
func (s Stats) Active() bool {
	return s.EnabledTables > 0
}

// ComputeStats derives the dashboard figures.
// The table count prefers the live schema and falls back to the configuration
// when the schema could not be read. Entries strictly after since count as recent.
func ComputeStats(configs []TableConfig, schemaTables []string, entries []Entry, since time.Time) Stats {
	s := Stats{
		TotalTables: len(schemaTables),
		TotalEvents: len(entries),
	}
	if s.TotalTables == 0 {
		s.TotalTables = len(configs)
	}
	for i := range configs {
		if configs[i].AuditEnabled {
			s.EnabledTables++
		}
	}
	for i := range entries {
		if entries[i].Timestamp.After(since) {
			s.RecentEvents++
		}
	}
	return s
}

// MissingTables returns the schema tables that have no configuration row yet
func MissingTables(configs []TableConfig, schemaTables []string) []string {
	existing := make(map[string]struct{}, len(configs))
	for i := range configs {
		existing[configs[i].TableName] = struct{}{}
	}
	missing := make([]string, 0)
	for _, t := range schemaTables {
		if _, ok := existing[t]; ok {
			continue
		}
		existing[t] = struct{}{}
		missing = append(missing, t)
	}
	return missing
}
