package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/israelmw/QuickAudit/audit"
	"github.com/israelmw/QuickAudit/manage"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const timestampLayout = "Jan 2, 2006 15:04:05"

type pageData struct {
	Overview  *manage.OverviewDTO
	Tab       string
	Filter    audit.Filter
	Error     string
	Notice    string
	CSRFToken string
	Operator  string
	LiveFeed  bool
}

const styles = `
body{margin:0;font-family:system-ui,sans-serif;color:#111827;background:#f9fafb}
.app-shell{display:flex;min-height:100vh}
.app-sidebar{width:220px;background:#111827;color:#f9fafb;padding:1.5rem 1rem}
.app-sidebar a{color:#d1d5db;display:block;padding:.4rem 0;text-decoration:none}
.app-main{flex:1;padding:1.5rem 2rem;min-width:0}
.topbar{display:flex;justify-content:space-between;align-items:center;margin-bottom:1.5rem}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(200px,1fr));gap:1rem;margin-bottom:1.5rem}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;padding:1rem}
.card h2{font-size:.875rem;font-weight:500;margin:0 0 .5rem}
.card .value{font-size:1.5rem;font-weight:700}
.muted{color:#6b7280;font-size:.75rem}
.dot{display:inline-block;width:.6rem;height:.6rem;border-radius:50%;margin-right:.4rem}
.dot.active{background:#22c55e}.dot.inactive{background:#f59e0b}
.tabs a{display:inline-block;padding:.5rem 1rem;text-decoration:none;color:#374151}
.tabs a.active{border-bottom:2px solid #111827;font-weight:600}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{text-align:left;padding:.6rem 1rem;border-bottom:1px solid #e5e7eb;font-size:.875rem;vertical-align:top}
th{font-size:.75rem;text-transform:uppercase;color:#6b7280}
.badge{display:inline-block;border-radius:9999px;padding:.1rem .6rem;font-size:.75rem;border:1px solid #d1d5db}
.badge.on,.badge.INSERT{background:#22c55e;color:#fff;border-color:#22c55e}
.badge.UPDATE{background:#3b82f6;color:#fff;border-color:#3b82f6}
.badge.DELETE{background:#ef4444;color:#fff;border-color:#ef4444}
.flash{padding:.75rem 1rem;border-radius:.5rem;margin-bottom:1rem}
.flash.error{background:#fef2f2;color:#991b1b;border:1px solid #fecaca}
.flash.notice{background:#f0fdf4;color:#166534;border:1px solid #bbf7d0}
.filters{display:flex;gap:.5rem;margin:1rem 0}
.filters input[type=search]{flex:1}
pre{white-space:pre-wrap;font-size:.75rem;background:#f3f4f6;padding:.5rem;border-radius:.25rem}
#live-banner{display:none}
`

const liveFeedScript = `
(function(){
  var source = new EventSource("/events");
  source.onmessage = function(){ document.getElementById("live-banner").style.display = "block"; };
})();
`

func layout(title string, operator string, liveFeed bool, body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title)),
				Link(Rel("icon"), Href("data:,")),
				StyleEl(Raw(styles)),
			),
			Body(
				Main(Class("app-shell"),
					Aside(Class("app-sidebar"),
						Strong(Text(title)),
						Nav(
							A(Href("/?tab="+tabTables), Text("Tables")),
							A(Href("/?tab="+tabLogs), Text("Audit Logs")),
						),
					),
					Div(Class("app-main"),
						Header(Class("topbar"),
							H1(Text("Audit Dashboard")),
							If(operator != "", Span(Class("muted"), Text("Signed in as "+operator))),
						),
						Div(ID("live-banner"), Class("flash notice"),
							Text("New audit activity. "),
							A(Href("/?tab="+tabLogs), Text("Reload")),
						),
						Group(body),
					),
				),
				If(liveFeed, Script(Raw(liveFeedScript))),
			),
		),
	)
}

func errorPage(title string, message string) Node {
	return layout(title, "", false,
		Div(Class("flash error"), Text(message)),
		A(Href("/"), Text("Back to the dashboard")),
	)
}

func overviewPage(p pageData) Node {
	o := p.Overview
	return layout(o.Name, p.Operator, p.LiveFeed,
		If(p.Error != "", Div(Class("flash error"), Strong(Text("Error: ")), Text(p.Error))),
		If(p.Notice != "", Div(Class("flash notice"), Text(p.Notice))),
		If(!o.SchemaAvailable, Div(Class("flash error"),
			Text("The database schema could not be listed, table counts are based on the audit configuration."),
		)),
		statCards(o),
		Nav(Class("tabs"),
			tabLink("Tables", tabTables, p.Tab),
			tabLink("Audit Logs", tabLogs, p.Tab),
		),
		Iff(p.Tab == tabTables, func() Node { return tablesTab(o.Tables, p.CSRFToken) }),
		Iff(p.Tab == tabLogs, func() Node { return logsTab(o.Feed, p.Filter, p.CSRFToken) }),
	)
}

func statCards(o *manage.OverviewDTO) Node {
	status, dot := "Inactive", "dot inactive"
	statusText := "QuickAudit is installed but no tables are currently being monitored. " +
		"Enable at least one table to start auditing."
	if o.Active {
		status, dot = "Active", "dot active"
		statusText = fmt.Sprintf("QuickAudit is active with %d %s monitored.",
			o.Stats.EnabledTables, plural(o.Stats.EnabledTables, "table", "tables"))
	}
	return Div(Class("cards"),
		Div(Class("card"),
			H2(Text("Total Tables")),
			Div(Class("value"), Text(strconv.Itoa(o.Stats.TotalTables))),
			P(Class("muted"), Textf("%d with audit enabled", o.Stats.EnabledTables)),
		),
		Div(Class("card"),
			H2(Text("Audit Events")),
			Div(Class("value"), Text(strconv.Itoa(o.Stats.TotalEvents))),
			P(Class("muted"), Textf("+%d in the last 24h", o.Stats.RecentEvents)),
		),
		Div(Class("card"),
			H2(Text("Status")),
			Div(Span(Class(dot)), Text(status)),
			P(Text(statusText)),
		),
		Div(Class("card"),
			H2(Text("Retention")),
			Div(Class("value"), Textf("%d days", o.RetentionDays)),
			P(Class("muted"), Text("Default retention policy")),
		),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func tabLink(label, tab, active string) Node {
	if tab == active {
		return A(Href("/?tab="+tab), Class("active"), Text(label))
	}
	return A(Href("/?tab="+tab), Text(label))
}

func csrfInput(token string) Node {
	return Input(Type("hidden"), Name(csrfField), Value(token))
}

func tablesTab(tables []*manage.TableConfigDTO, token string) Node {
	rows := make([]Node, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, tableRow(t, token))
	}
	if len(rows) == 0 {
		rows = append(rows, Tr(Td(Attr("colspan", "4"), Class("muted"),
			Text("No tables configured for audit. Run the setup SQL to create the required tables."),
		)))
	}
	return Section(
		Div(Class("topbar"),
			H2(Text("Audit Table Setup")),
			Form(Method("post"), Action("/tables/enable-all"),
				csrfInput(token),
				Button(Type("submit"), Text("Enable All")),
			),
		),
		Table(
			THead(Tr(Th(Text("Table Name")), Th(Text("Audit Enabled")), Th(Text("Status")), Th(Text("Last Modified")))),
			TBody(Group(rows)),
		),
	)
}

func tableRow(t *manage.TableConfigDTO, token string) Node {
	label, badge := "Enable", Span(Class("badge"), Text("Inactive"))
	if t.AuditEnabled {
		label, badge = "Disable", Span(Class("badge on"), Text("Active"))
	}
	return Tr(
		Td(Strong(Text(t.TableName))),
		Td(Form(Method("post"), Action("/tables/toggle"),
			csrfInput(token),
			Input(Type("hidden"), Name("table_name"), Value(t.TableName)),
			Input(Type("hidden"), Name("enable"), Value(strconv.FormatBool(!t.AuditEnabled))),
			Button(Type("submit"), Text(label)),
		)),
		Td(badge),
		Td(Class("muted"), Text(formatTimestamp(t.CreatedAt))),
	)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format(timestampLayout)
}

func logsTab(feed *manage.FeedDTO, filter audit.Filter, token string) Node {
	rows := make([]Node, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		rows = append(rows, logRow(e, token))
	}
	if len(rows) == 0 {
		rows = append(rows, Tr(Td(Attr("colspan", "6"), Class("muted"), Text("No audit logs found"))))
	}
	return Section(
		filterForm(feed, filter),
		Table(
			THead(Tr(
				Th(Text("Time")), Th(Text("Table")), Th(Text("Operation")),
				Th(Text("User")), Th(Text("Changes")), Th(Text("Actions")),
			)),
			TBody(Group(rows)),
		),
		P(Class("muted"), Textf("Showing %d of %d audit logs", len(feed.Entries), feed.Total)),
	)
}

func filterForm(feed *manage.FeedDTO, filter audit.Filter) Node {
	tables := []Node{Option(Value(""), Text("All Tables"))}
	for _, t := range feed.Tables {
		tables = append(tables, optionSelected(t, filter.Table))
	}
	operations := []Node{Option(Value(""), Text("All Operations"))}
	for _, op := range feed.Operations {
		operations = append(operations, optionSelected(op, string(filter.Operation)))
	}
	return Form(Class("filters"), Method("get"), Action("/"),
		Input(Type("hidden"), Name("tab"), Value(tabLogs)),
		Input(Type("search"), Name("q"), Value(filter.Search), Placeholder("Search logs...")),
		Select(Name("table"), Group(tables)),
		Select(Name("operation"), Group(operations)),
		Button(Type("submit"), Text("Filter")),
		If(!filter.IsZero(), A(Href("/?"+url.Values{"tab": {tabLogs}}.Encode()), Text("Clear filters"))),
	)
}

func optionSelected(value, selected string) Node {
	if value == selected {
		return Option(Value(value), Selected(), Text(value))
	}
	return Option(Value(value), Text(value))
}

func logRow(e *manage.AuditLogDTO, token string) Node {
	var action Node
	switch {
	case e.Reverted:
		action = Span(Class("badge"), Text("Reverted"))
	default:
		action = Form(Method("post"), Action(fmt.Sprintf("/logs/%d/revert", e.ID)),
			csrfInput(token),
			Button(Type("submit"), Title("Attempt to revert this change"), Text("Revert")),
		)
	}
	return Tr(
		Td(Class("muted"), Text(formatTimestamp(e.Timestamp))),
		Td(Text(e.TableName)),
		Td(Span(Class("badge "+e.Operation), Text(e.Operation))),
		Td(Text(e.Actor)),
		Td(Details(
			Summary(Text(e.Summary)),
			changeDetails(e),
		)),
		Td(action),
	)
}

func changeDetails(e *manage.AuditLogDTO) Node {
	switch audit.Operation(e.Operation) {
	case audit.OperationUpdate:
		return Div(
			P(Class("muted"), Text("Old Data:")),
			Pre(Text(audit.FormatValue(e.OldData))),
			P(Class("muted"), Text("New Data:")),
			Pre(Text(audit.FormatValue(e.RowData))),
		)
	case audit.OperationInsert:
		return Div(
			P(Class("muted"), Text("Inserted Data:")),
			Pre(Text(audit.FormatValue(e.RowData))),
		)
	}
	return Div(
		P(Class("muted"), Text("Deleted Data:")),
		Pre(Text(audit.FormatValue(e.OldData))),
	)
}
