package notify

import (
	"context"
	"testing"

	"github.com/israelmw/QuickAudit/events"
	"github.com/israelmw/QuickAudit/events/event"
	"github.com/israelmw/QuickAudit/mailing"
	"github.com/israelmw/QuickAudit/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type capturingPublisher struct {
	published []events.Event
}

func (c *capturingPublisher) Publish(ctx context.Context, ev events.Event) error {
	c.published = append(c.published, ev)
	return nil
}

type capturingMailer struct {
	recipients []string
	notices    []mailing.RevertNotice
}

func (c *capturingMailer) SendRevertNotice(recipients []string, n mailing.RevertNotice) error {
	c.recipients = recipients
	c.notices = append(c.notices, n)
	return nil
}

func TestMetricsListeners(t *testing.T) {
	assert := assert.New(t)
	m := metrics.New()
	d := events.NewDispatcher(zaptest.NewLogger(t))
	d.Register(MetricsListeners(m)...)

	ctx := context.Background()
	d.Dispatch(ctx, &event.TableAuditToggled{Table: "orders", Enabled: true})
	d.Dispatch(ctx, &event.TableAuditToggled{Table: "orders", Enabled: false})
	d.Dispatch(ctx, &event.TablesDiscovered{Tables: []string{"a", "b"}})
	d.Dispatch(ctx, &event.ChangeReverted{Table: "orders"})
	d.Dispatch(ctx, &event.ChangeRevertFailed{Table: "orders"})

	assert.Equal(float64(1), testutil.ToFloat64(m.TableToggles.WithLabelValues("enabled")))
	assert.Equal(float64(1), testutil.ToFloat64(m.TableToggles.WithLabelValues("disabled")))
	assert.Equal(float64(2), testutil.ToFloat64(m.DiscoveredTables))
	assert.Equal(float64(1), testutil.ToFloat64(m.Reverts.WithLabelValues("orders", "success")))
	assert.Equal(float64(1), testutil.ToFloat64(m.Reverts.WithLabelValues("orders", "failure")))
}

func TestFeedListenersForwardEveryEvent(t *testing.T) {
	p := &capturingPublisher{}
	d := events.NewDispatcher(zaptest.NewLogger(t))
	d.Register(FeedListeners(p)...)

	d.Dispatch(context.Background(), &event.AllAuditsEnabled{By: "ops@example.com"})
	d.Dispatch(context.Background(), &event.ChangeReverted{EntryID: 4})
	assert.Len(t, p.published, 2)
}

func TestMailListenerOnlyOnRevert(t *testing.T) {
	assert := assert.New(t)
	mailer := &capturingMailer{}
	d := events.NewDispatcher(zaptest.NewLogger(t))
	d.RegisterAsync(MailListeners(zaptest.NewLogger(t), mailer, []string{"dba@example.com"})...)

	d.Dispatch(context.Background(), &event.ChangeRevertFailed{EntryID: 3})
	d.Dispatch(context.Background(), &event.ChangeReverted{EntryID: 4, Table: "orders", Operation: "DELETE", By: "System"})
	d.Wait()

	assert.Equal([]string{"dba@example.com"}, mailer.recipients)
	if assert.Len(mailer.notices, 1) {
		assert.Equal(int64(4), mailer.notices[0].EntryID)
		assert.Equal("DELETE", mailer.notices[0].Operation)
	}
	assert.Nil(MailListeners(zaptest.NewLogger(t), mailer, nil))
}
