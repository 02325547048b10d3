// Package mailer sends e-mail over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Message is a single e-mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers messages through one SMTP relay.
type Mailer struct {
	cfg  Config
	send sendFunc
}

// New returns a Mailer for cfg. Host and From are required.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host cannot be empty")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("sender email address cannot be empty")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers msg. The body is sent as HTML when it looks like HTML.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if msg.Subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	if strings.ContainsAny(msg.To+msg.Subject, "\r\n") {
		return fmt.Errorf("header values cannot contain line breaks")
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{msg.To}, compose(m.cfg.From, msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func compose(from string, msg Message) []byte {
	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(msg.Body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	return []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", msg.To, from, msg.Subject, contentType, msg.Body))
}
