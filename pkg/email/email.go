package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Message is a provider-neutral outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a single message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// EmailService renders contact notifications and hands them to a Sender
type EmailService struct {
	sender    Sender
	fromEmail string
	toEmail   string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
}

// NewEmailService creates an email service that sends from a fixed address to a fixed recipient
func NewEmailService(sender Sender, fromEmail, toEmail string) *EmailService {
	return &EmailService{
		sender:    sender,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// contactEmailTemplate is the HTML template for contact form emails.
// html/template escapes every interpolated field.
const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Nowa wiadomość z formularza kontaktowego</title>
</head>
<body>
    <h3>Nowa wiadomość z formularza kontaktowego</h3>
    <p><strong>Od:</strong> {{.SenderName}}</p>
    <p><strong>Email:</strong> {{.SenderEmail}}</p>
    <p><strong>Wiadomość:</strong></p>
    <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`

var contactTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))

// ContactSubject builds the notification subject line for a sender name
func ContactSubject(name string) string {
	return fmt.Sprintf("Nowa wiadomość od %s", name)
}

// RenderContactEmail renders the notification body
func RenderContactEmail(data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendContactEmail sends a contact form email to the configured recipient.
// Exactly one Send call is made; there is no retry.
func (s *EmailService) SendContactEmail(ctx context.Context, data ContactEmailData) (string, error) {
	html, err := RenderContactEmail(data)
	if err != nil {
		return "", err
	}

	msg := &Message{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		ReplyTo: data.SenderEmail,
		Subject: ContactSubject(data.SenderName),
		HTML:    html,
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return id, nil
}

// IsConfigured checks that a sender and both addresses are present
func (s *EmailService) IsConfigured() bool {
	return s != nil && s.sender != nil && s.fromEmail != "" && s.toEmail != ""
}
