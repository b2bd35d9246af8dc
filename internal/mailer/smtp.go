package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hlstech/website/internal/model"
)

// Config holds SMTP transport settings.
type Config struct {
	Host        string
	Port        int
	User        string
	Pass        string
	FromEmail   string
	FromName    string
	NotifyEmail string // site owner, receives contact notifications
}

// Message is a single plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends emails via SMTP.
type Mailer struct {
	cfg *Config

	// sendFn is swapped out in tests to capture messages.
	sendFn func(Message) error
}

func New(cfg *Config) *Mailer {
	m := &Mailer{cfg: cfg}
	m.sendFn = m.smtpSend
	return m
}

// Send delivers the message. When SMTP is not configured the message is
// logged instead, so development setups work without a mail server.
func (m *Mailer) Send(msg Message) error {
	return m.sendFn(msg)
}

func (m *Mailer) smtpSend(msg Message) error {
	if m.cfg.Host == "" {
		slog.Info("mailer: SMTP not configured, logging instead",
			"to", strings.Join(msg.To, ", "), "subject", msg.Subject)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.FromEmail, msg.To, []byte(m.formatMessage(msg)))
}

func (m *Mailer) formatMessage(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String()
}

// sanitizeHeader strips CR/LF so user-supplied subjects cannot inject headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// ContactNotification is the message sent to the site owner when a contact
// form is submitted.
func (m *Mailer) ContactNotification(c *model.Contact) Message {
	var b strings.Builder
	b.WriteString("New contact form submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.ServiceInterest != "" {
		fmt.Fprintf(&b, "Service interest: %s\n", c.ServiceInterest)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", c.Subject)
	fmt.Fprintf(&b, "Message:\n%s\n", c.Message)

	return Message{
		To:      []string{m.cfg.NotifyEmail},
		Subject: "New Contact: " + c.Subject,
		Body:    b.String(),
	}
}

// ContactAutoReply is the acknowledgement sent back to the submitter.
func (m *Mailer) ContactAutoReply(c *model.Contact) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for contacting %s. We have received your message regarding %q and will get back to you within one business day.\n\nBest regards,\n%s",
		c.Name, m.cfg.FromName, c.Subject, m.cfg.FromName,
	)
	return Message{
		To:      []string{c.Email},
		Subject: "We received your message",
		Body:    body,
	}
}

// NewsletterWelcome greets a new newsletter subscriber.
func (m *Mailer) NewsletterWelcome(email, name string) Message {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	body := fmt.Sprintf(
		"%s,\n\nWelcome to the %s newsletter! You'll hear from us when we publish new articles and announce new services.\n\nBest regards,\n%s",
		greeting, m.cfg.FromName, m.cfg.FromName,
	)
	return Message{
		To:      []string{email},
		Subject: fmt.Sprintf("Welcome to the %s newsletter", m.cfg.FromName),
		Body:    body,
	}
}
