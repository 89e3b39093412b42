// Package notify contains the event listeners that report state changes
// to metrics, the live feed and by email
package notify

import (
	"context"

	"github.com/israelmw/QuickAudit/events"
	"github.com/israelmw/QuickAudit/events/event"
	"github.com/israelmw/QuickAudit/mailing"
	"github.com/israelmw/QuickAudit/metrics"
	"go.uber.org/zap"
)

type metricsListener struct {
	name    events.EventName
	metrics *metrics.Metrics
}

func (l *metricsListener) ForEvent() events.EventName { return l.name }

func (l *metricsListener) Handle(ctx context.Context, ev events.Event) error {
	switch e := ev.(type) {
	case *event.TableAuditToggled:
		state := "disabled"
		if e.Enabled {
			state = "enabled"
		}
		l.metrics.TableToggles.WithLabelValues(state).Inc()
	case *event.AllAuditsEnabled:
		l.metrics.TableToggles.WithLabelValues("all_enabled").Inc()
	case *event.TablesDiscovered:
		l.metrics.DiscoveredTables.Add(float64(len(e.Tables)))
	case *event.ChangeReverted:
		l.metrics.Reverts.WithLabelValues(e.Table, "success").Inc()
	case *event.ChangeRevertFailed:
		l.metrics.Reverts.WithLabelValues(e.Table, "failure").Inc()
	}
	return nil
}

// MetricsListeners counts every event
func MetricsListeners(m *metrics.Metrics) []events.EventListener {
	listeners := make([]events.EventListener, 0, len(event.All))
	for _, name := range event.All {
		listeners = append(listeners, &metricsListener{name: name, metrics: m})
	}
	return listeners
}

type publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

type feedListener struct {
	name events.EventName
	feed publisher
}

func (l *feedListener) ForEvent() events.EventName { return l.name }

func (l *feedListener) Handle(ctx context.Context, ev events.Event) error {
	return l.feed.Publish(ctx, ev)
}

// FeedListeners forwards every event to the live feed
func FeedListeners(feed publisher) []events.EventListener {
	listeners := make([]events.EventListener, 0, len(event.All))
	for _, name := range event.All {
		listeners = append(listeners, &feedListener{name: name, feed: feed})
	}
	return listeners
}

type revertMailer interface {
	SendRevertNotice(recipients []string, n mailing.RevertNotice) error
}

type revertMailListener struct {
	log        *zap.Logger
	mailer     revertMailer
	recipients []string
}

func (*revertMailListener) ForEvent() events.EventName { return event.ChangeRevertedEvent }

func (l *revertMailListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.ChangeReverted)
	if !ok {
		return nil
	}
	l.log.Debug("sending revert notice", zap.Int64("entry", e.EntryID), zap.Int("recipients", len(l.recipients)))
	return l.mailer.SendRevertNotice(l.recipients, mailing.RevertNotice{
		EntryID:   e.EntryID,
		Table:     e.Table,
		Operation: e.Operation,
		Summary:   e.Summary,
		By:        e.By,
	})
}

// MailListeners notifies the recipients about reverted changes
func MailListeners(log *zap.Logger, mailer revertMailer, recipients []string) []events.EventListener {
	if len(recipients) == 0 {
		return nil
	}
	return []events.EventListener{
		&revertMailListener{log: log, mailer: mailer, recipients: recipients},
	}
}
