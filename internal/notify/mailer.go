// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify delivers notification emails. Delivery is best effort;
// callers log failures and move on.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Email is a single outbound message. Body is HTML.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a single email.
type Mailer interface {
	Send(email Email) error
}

// SMTPMailer delivers through a plain SMTP relay. Auth is optional; leave
// Username empty for an open relay (local dev with Mailpit and the like).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer builds a mailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one message synchronously.
func (m *SMTPMailer) Send(email Email) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(email.Body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{email.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	return nil
}

// NopMailer discards everything. Used when no SMTP relay is configured.
type NopMailer struct{}

func (NopMailer) Send(Email) error { return nil }
