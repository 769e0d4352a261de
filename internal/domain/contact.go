package domain

import (
	"context"
	"errors"
)

var (
	// ErrEmailServiceNotConfigured means no provider/addresses are available to relay mail
	ErrEmailServiceNotConfigured = errors.New("email service is not configured")
	// ErrInvalidContact means a field was blank after trimming
	ErrInvalidContact = errors.New("invalid contact submission")
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,not_blank,max=100,single_line" example:"Anna Kowalska"`
	Email   string `json:"email" binding:"required,email,max=254" example:"anna@example.com"`
	Message string `json:"message" binding:"required,not_blank,max=5000" example:"We would like a quote for a new website."`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage relays one submission as one notification email
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
