// Package email delivers candidate-facing notifications.
package email

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier sends candidate-facing emails. The workflow only depends on this
// interface so tests can capture messages instead of sending them.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPNotifier sends mail through a plain SMTP relay.
type SMTPNotifier struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPNotifier creates a notifier for the given relay
func NewSMTPNotifier(host string, port int, user, pass, from string) (*SMTPNotifier, error) {
	if host == "" || from == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPNotifier{Host: host, Port: port, User: user, Pass: pass, From: from}, nil
}

// Send delivers the message. The context deadline is not honored mid-dial
// because net/smtp does not accept one; callers should keep messages small.
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("recipient address is empty")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", n.From)
	fmt.Fprintf(&sb, "To: %s\r\n", msg.To)
	fmt.Fprintf(&sb, "Subject: %s\r\n", msg.Subject)
	sb.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Pass, n.Host)
	}

	if err := smtp.SendMail(addr, auth, n.From, []string{msg.To}, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

// LogNotifier writes messages to the process log instead of sending them.
// Used for local development when no SMTP relay is configured.
type LogNotifier struct{}

// Send logs the message and always succeeds.
func (LogNotifier) Send(_ context.Context, msg Message) error {
	log.Printf("email (dry-run) to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
