package application

import (
	"context"
	"testing"

	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPasswordResetService_Request(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	user := &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
	}

	t.Run("revokes earlier tokens before issuing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenStore)
		emails := new(MockEmailSender)
		service := NewPasswordResetService(userRepo, tokens, emails, logger)

		userRepo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)
		tokens.On("RevokeAll", ctx, "alice").Return(nil)
		tokens.On("Issue", ctx, "alice").Return("token-value", nil)
		emails.On("SendPasswordResetEmail", ctx, "alice@example.com", "token-value").Return(nil)

		err := service.Request(ctx, "alice@example.com")
		assert.NoError(t, err)
		tokens.AssertExpectations(t)
		emails.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenStore)
		emails := new(MockEmailSender)
		service := NewPasswordResetService(userRepo, tokens, emails, logger)

		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		err := service.Request(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("issue failure propagates", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenStore)
		emails := new(MockEmailSender)
		service := NewPasswordResetService(userRepo, tokens, emails, logger)

		userRepo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)
		tokens.On("RevokeAll", ctx, "alice").Return(nil)
		tokens.On("Issue", ctx, "alice").Return("", domain.ErrUnknownUser)

		err := service.Request(ctx, "alice@example.com")
		assert.ErrorIs(t, err, domain.ErrUnknownUser)
		emails.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPasswordResetService_Reset(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	t.Run("successful reset updates the password hash", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenStore)
		emails := new(MockEmailSender)
		service := NewPasswordResetService(userRepo, tokens, emails, logger)

		tokens.On("Validate", ctx, "token-value").Return(nil)
		tokens.On("Username", ctx, "token-value").Return("alice", nil)
		tokens.On("Consume", ctx, "token-value").Return(nil)
		userRepo.On("UpdatePassword", ctx, "alice", mock.MatchedBy(func(hash string) bool {
			return password.CheckPassword("new-secret", hash) == nil
		})).Return(nil)

		err := service.Reset(ctx, "token-value", "new-secret")
		assert.NoError(t, err)
		tokens.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("invalid token stops before any write", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenStore)
		emails := new(MockEmailSender)
		service := NewPasswordResetService(userRepo, tokens, emails, logger)

		tokens.On("Validate", ctx, "stale-token").Return(domain.ErrTokenRevoked)

		err := service.Reset(ctx, "stale-token", "new-secret")
		assert.ErrorIs(t, err, domain.ErrTokenRevoked)
		tokens.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("double spend fails on consume", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenStore)
		emails := new(MockEmailSender)
		service := NewPasswordResetService(userRepo, tokens, emails, logger)

		tokens.On("Validate", ctx, "token-value").Return(nil)
		tokens.On("Username", ctx, "token-value").Return("alice", nil)
		tokens.On("Consume", ctx, "token-value").Return(domain.ErrTokenConsumed)

		err := service.Reset(ctx, "token-value", "new-secret")
		assert.ErrorIs(t, err, domain.ErrTokenConsumed)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}
