package application

import (
	"context"

	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/password"
	"go.uber.org/zap"
)

// PasswordResetService drives the reset workflow on a token store scoped
// to password_reset: revoke-then-issue on request, validate-then-consume
// on completion.
type PasswordResetService struct {
	userRepo    domain.UserRepository
	resetTokens domain.TokenStore
	emailSender domain.EmailSender
	logger      *zap.Logger
}

func NewPasswordResetService(
	userRepo domain.UserRepository,
	resetTokens domain.TokenStore,
	emailSender domain.EmailSender,
	logger *zap.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		emailSender: emailSender,
		logger:      logger,
	}
}

// Request starts a reset for the account behind the email address. Any
// earlier reset tokens are revoked first, so only the newest link works.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.resetTokens.RevokeAll(ctx, user.Username); err != nil {
		return err
	}

	token, err := s.resetTokens.Issue(ctx, user.Username)
	if err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		s.logger.Error("failed to send password reset email", zap.Error(err))
		return err
	}

	return nil
}

// Reset exchanges a valid reset token for a new password. Validate and
// Consume are two explicit steps; Consume closes the double-spend window.
func (s *PasswordResetService) Reset(ctx context.Context, token, newPassword string) error {
	if err := s.resetTokens.Validate(ctx, token); err != nil {
		return err
	}

	username, err := s.resetTokens.Username(ctx, token)
	if err != nil {
		return err
	}

	if err := s.resetTokens.Consume(ctx, token); err != nil {
		return err
	}

	hashedPassword, err := password.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return domain.ErrInternal
	}

	if err := s.userRepo.UpdatePassword(ctx, username, hashedPassword); err != nil {
		s.logger.Error("failed to update password", zap.Error(err))
		return domain.ErrInternal
	}

	return nil
}
