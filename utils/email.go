package utils

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Attachment is an in-memory file attached to an outgoing email
type Attachment struct {
	Filename string
	Content  []byte
}

// SendHTMLEmail sends an HTML email through the configured SMTP server,
// optionally with attachments. SMTP settings come from environment
// variables; a missing host or sender is a configuration error.
func SendHTMLEmail(to, subject, body string, attachments ...Attachment) error {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("SMTP_FROM")
	if host == "" || from == "" {
		return fmt.Errorf("email transport not configured")
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	for _, att := range attachments {
		content := att.Content
		m.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
