package domain

import "context"

// EmailSender defines the interface for sending workflow emails
type EmailSender interface {
	SendActivationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}

// EmailCommand defines the interface for the raw email transport
type EmailCommand interface {
	Send(ctx context.Context, email, subject, template, token string) error
}
