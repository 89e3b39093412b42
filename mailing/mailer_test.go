package mailing

import (
	"bytes"
	"testing"

	"github.com/go-mail/mail"
	"github.com/israelmw/QuickAudit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type capturingSender struct {
	sent []*mail.Message
}

func (c *capturingSender) DialAndSend(m ...*mail.Message) error {
	c.sent = append(c.sent, m...)
	return nil
}

func testConfig(enabled bool) *config.Configuration {
	return &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{Name: "QuickAudit"},
		SMTP: &config.SMTPConfiguration{
			Enable:      enabled,
			Host:        "localhost",
			Port:        1025,
			Address:     "audit@example.com",
			DisplayName: "QuickAudit",
		},
	}
}

func TestSendRevertNotice(t *testing.T) {
	assert := assert.New(t)
	m, err := NewMailer(zaptest.NewLogger(t), testConfig(true))
	require.NoError(t, err)
	c := &capturingSender{}
	m.client = c

	err = m.SendRevertNotice([]string{"dba@example.com", "lead@example.com"}, RevertNotice{
		EntryID:   12,
		Table:     "orders",
		Operation: "UPDATE",
		Summary:   "status: new → paid",
		By:        "ops@example.com",
	})
	assert.NoError(err)
	if assert.Len(c.sent, 1) {
		msg := c.sent[0]
		assert.Equal([]string{"[QuickAudit] UPDATE change on orders reverted"}, msg.GetHeader("Subject"))
		assert.Equal([]string{"dba@example.com", "lead@example.com"}, msg.GetHeader("To"))
		buf := new(bytes.Buffer)
		_, err := msg.WriteTo(buf)
		assert.NoError(err)
		assert.Contains(buf.String(), "orders")
	}
}

func TestSendRevertNoticeWithoutRecipients(t *testing.T) {
	m, err := NewMailer(zaptest.NewLogger(t), testConfig(true))
	require.NoError(t, err)
	c := &capturingSender{}
	m.client = c
	assert.NoError(t, m.SendRevertNotice(nil, RevertNotice{Table: "orders"}))
	assert.Empty(t, c.sent)
}

func TestDisabledMailerSkips(t *testing.T) {
	m, err := NewMailer(zaptest.NewLogger(t), testConfig(false))
	require.NoError(t, err)
	assert.True(t, m.noop)
	assert.NoError(t, m.SendRevertNotice([]string{"dba@example.com"}, RevertNotice{Table: "orders"}))
	assert.NoError(t, NewNoOpMailer(zaptest.NewLogger(t)).SendRevertNotice([]string{"a@b.c"}, RevertNotice{}))
}

func TestSendTestEmail(t *testing.T) {
	m, err := NewMailer(zaptest.NewLogger(t), testConfig(true))
	require.NoError(t, err)
	c := &capturingSender{}
	m.client = c
	assert.NoError(t, m.SendTestEmail("ops@example.com"))
	if assert.Len(t, c.sent, 1) {
		assert.Equal(t, []string{"ops@example.com"}, c.sent[0].GetHeader("To"))
	}
}

func TestSendTestEmailWithoutSMTP(t *testing.T) {
	m, err := NewMailer(zaptest.NewLogger(t), testConfig(false))
	require.NoError(t, err)
	assert.ErrorIs(t, m.SendTestEmail("ops@example.com"), ErrSMTPDisabled)
	assert.ErrorIs(t, NewNoOpMailer(zaptest.NewLogger(t)).SendTestEmail("ops@example.com"), ErrSMTPDisabled)
}
