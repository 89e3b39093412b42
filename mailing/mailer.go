package mailing

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-mail/mail"
	"github.com/israelmw/QuickAudit/config"
	"github.com/jaytaylor/html2text"
	"go.uber.org/zap"
)

//go:embed template.html
var templates embed.FS

// ErrSMTPDisabled is returned when a mail is requested explicitly but smtp is not enabled
var ErrSMTPDisabled = errors.New("smtp is not enabled")

type sender interface {
	DialAndSend(m ...*mail.Message) error
}

// RevertNotice is the content of a revert notification
type RevertNotice struct {
	EntryID   int64
	Table     string
	Operation string
	Summary   string
	By        string
}

// Mailer sends notification emails
type Mailer struct {
	noop          bool
	client        sender
	log           *zap.Logger
	cfg           *config.Configuration
	emailTemplate *template.Template
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.Behaviour.Name
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["title"] = title
	b["message"] = message
	return b
}

// SendRevertNotice informs the recipients that a captured change was reverted
func (m *Mailer) SendRevertNotice(recipients []string, n RevertNotice) error {
	if m.noop {
		m.log.Info("skipping email `RevertNotice` because smtp is not enabled", zap.Int64("entry", n.EntryID))
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}
	subject := fmt.Sprintf("[%s] %s change on %s reverted", m.cfg.Behaviour.Name, n.Operation, n.Table)
	base := m.baseModel(
		"A change was reverted",
		fmt.Sprintf("The %s on %s has been reverted.", strings.ToLower(n.Operation), n.Table),
	)
	base["subject"] = subject
	base["entry_id"] = n.EntryID
	base["table"] = n.Table
	base["operation"] = n.Operation
	base["summary"] = n.Summary
	base["by"] = n.By
	return m.send(recipients, subject, base)
}

// SendTestEmail sends a test message to check the smtp configuration
func (m *Mailer) SendTestEmail(email string) error {
	if m.noop {
		return ErrSMTPDisabled
	}
	base := m.baseModel("This is a test", "your email configuration seems to be fine.")
	base["subject"] = "Your test email is here!"
	return m.send([]string{email}, "Your test email is here!", base)
}

func (m *Mailer) send(recipients []string, subject string, viewModel map[string]interface{}) error {
	buffer := new(strings.Builder)
	if err := m.emailTemplate.Execute(buffer, viewModel); err != nil {
		return errors.Wrap(err, "rendering email")
	}
	html := buffer.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)
	return errors.Wrap(m.client.DialAndSend(msg), "sending email")
}

// NewMailer creates a mailer, without enabled smtp settings every send is skipped
func NewMailer(log *zap.Logger, cfg *config.Configuration) (*Mailer, error) {
	t, err := template.ParseFS(templates, "template.html")
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          cfg.SMTP == nil || !cfg.SMTP.Enable,
		log:           log,
		emailTemplate: t,
		cfg:           cfg,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

// NewNoOpMailer returns a mailer that never sends anything
func NewNoOpMailer(log *zap.Logger) *Mailer {
	return &Mailer{
		noop: true,
		log:  log,
	}
}
