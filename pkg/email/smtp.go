package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender delivers mail through an authenticated SMTP relay (e.g. Brevo)
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates an SMTP sender using PLAIN auth
func NewSMTPSender(host, port, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

// Send writes a MIME html message to the relay. SMTP gives no message id,
// so a locally generated one is returned.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("<%d.contact@%s>", time.Now().UnixNano(), s.host)
	raw := buildMIME(msg, id)

	// Setup SMTP authentication
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, msg.From, msg.To, raw); err != nil {
		return "", fmt.Errorf("smtp: %w", err)
	}

	return id, nil
}

func buildMIME(msg *Message, id string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", stripCRLF(msg.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", encodeSubject(msg.Subject))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", id)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// encodeSubject RFC 2047-encodes non-ASCII subjects ("Nowa wiadomość ...")
func encodeSubject(subject string) string {
	subject = stripCRLF(subject)
	for _, r := range subject {
		if r > 127 {
			return mime.QEncoding.Encode("utf-8", subject)
		}
	}
	return subject
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
