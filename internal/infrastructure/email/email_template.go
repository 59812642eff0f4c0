package email

import (
	"context"

	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/config"
	"go.uber.org/zap"
)

// EmailTemplate pairs the workflow email bodies with the raw transport
type EmailTemplate struct {
	config      *config.SMTPConfig
	logger      *zap.Logger
	emailSender domain.EmailCommand
}

func NewEmailTemplate(cfg *config.SMTPConfig, logger *zap.Logger) *EmailTemplate {
	emailCommand := NewEmailService(cfg, logger)
	return &EmailTemplate{
		config:      cfg,
		logger:      logger,
		emailSender: emailCommand,
	}
}

func (s *EmailTemplate) SendActivationEmail(ctx context.Context, email, token string) error {
	subject := "Welcome! Please activate your account"
	template := `
Hi there!

Welcome to our platform! We're excited to have you on board.

To get started, please activate your account by entering this code:
%s

This code will expire in 24 hours.

If you didn't create an account, you can safely ignore this email.

Best regards,
The Team
`
	return s.emailSender.Send(ctx, email, subject, template, token)
}

func (s *EmailTemplate) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	subject := "Reset your password"
	template := `
Hi there!

We received a request to reset your password. To proceed, please use this code:
%s

This code will expire in 1 hour.

If you didn't request a password reset, please ignore this email or contact support if you have concerns.

Stay secure,
The Team
`
	return s.emailSender.Send(ctx, email, subject, template, token)
}
