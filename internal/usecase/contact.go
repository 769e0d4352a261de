package usecase

import (
	"context"
	"fmt"
	"strings"

	"davinci-contact-api/internal/domain"
	"davinci-contact-api/pkg/email"
	"davinci-contact-api/pkg/logger"
)

// ContactMailer is the part of email.EmailService the contact flow needs
type ContactMailer interface {
	IsConfigured() bool
	SendContactEmail(ctx context.Context, data email.ContactEmailData) (string, error)
}

type contactUsecase struct {
	mailer ContactMailer
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer ContactMailer) domain.ContactUsecase {
	return &contactUsecase{
		mailer: mailer,
	}
}

// SendContactMessage validates the contact request and sends the email.
// One call, one send attempt: no retries, no deduplication.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", domain.ErrInvalidContact)
	}

	// Additional validation beyond binding
	data := email.ContactEmailData{
		SenderName:  strings.TrimSpace(req.Name),
		SenderEmail: strings.TrimSpace(req.Email),
		Message:     strings.TrimSpace(req.Message),
	}
	switch {
	case data.SenderName == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidContact)
	case data.SenderEmail == "":
		return fmt.Errorf("%w: email is required", domain.ErrInvalidContact)
	case data.Message == "":
		return fmt.Errorf("%w: message is required", domain.ErrInvalidContact)
	}

	if uc.mailer == nil || !uc.mailer.IsConfigured() {
		return domain.ErrEmailServiceNotConfigured
	}

	id, err := uc.mailer.SendContactEmail(ctx, data)
	if err != nil {
		logger.Log.ErrorContext(ctx, "Error sending email", "outcome", "failed", "error", err)
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	logger.Log.InfoContext(ctx, "Contact email sent", "outcome", "sent", "email_id", id)
	return nil
}
