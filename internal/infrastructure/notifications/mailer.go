package notifications

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends HTML email via unauthenticated SMTP (Mailpit-compatible
// in development, a local relay in production).
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(host, port, from string) *SMTPMailer {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@emed.local"
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

// SendEmail delivers a single HTML message. If no host is configured the
// message is printed instead of sent, matching local development setups.
func (m *SMTPMailer) SendEmail(to, subject, htmlBody string) error {
	if strings.HasPrefix(m.addr, ":") {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n", to, subject)
		return nil
	}

	msg := buildMessage(m.from, to, subject, htmlBody)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		htmlBody,
	)
}
