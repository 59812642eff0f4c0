package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/ipede/identity-token-service/internal/infrastructure/config"
	"go.uber.org/zap"
)

// EmailService sends mail over plain SMTP
type EmailService struct {
	config *config.SMTPConfig
	logger *zap.Logger
}

func NewEmailService(cfg *config.SMTPConfig, logger *zap.Logger) *EmailService {
	return &EmailService{
		config: cfg,
		logger: logger,
	}
}

// Send renders the template with the token and delivers the message
func (s *EmailService) Send(ctx context.Context, email, subject, template, token string) error {
	body := fmt.Sprintf(template, token)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", s.config.From, email, subject, body)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	err := smtp.SendMail(
		fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		auth,
		s.config.From,
		[]string{email},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", email),
			zap.String("subject", subject),
			zap.Error(err))
		return err
	}

	return nil
}
