package application

import (
	"context"

	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/password"
	"go.uber.org/zap"
)

// JWTGenerator signs access/refresh pairs for authenticated sessions
type JWTGenerator interface {
	GenerateTokenPair(userID domain.ULID, roles []string) (*domain.TokenPair, error)
}

// AuthService owns registration, activation and login. Activation runs on
// a token store scoped to user_registered.
type AuthService struct {
	userRepo         domain.UserRepository
	activationTokens domain.TokenStore
	jwtService       JWTGenerator
	emailSender      domain.EmailSender
	logger           *zap.Logger
}

func NewAuthService(
	userRepo domain.UserRepository,
	activationTokens domain.TokenStore,
	jwtService JWTGenerator,
	emailSender domain.EmailSender,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		activationTokens: activationTokens,
		jwtService:       jwtService,
		emailSender:      emailSender,
		logger:           logger,
	}
}

// Register creates a new, inactive user and mails them an activation token
func (s *AuthService) Register(ctx context.Context, username, name, email, passwordStr string) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByUsernameAndEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.HashPassword(passwordStr)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	user := domain.NewUser(username, name, email, hashedPassword)
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	token, err := s.activationTokens.Issue(ctx, user.Username)
	if err != nil {
		s.logger.Error("failed to issue activation token", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if err := s.emailSender.SendActivationEmail(ctx, user.Email, token); err != nil {
		// The account exists either way; the token can be reissued later.
		s.logger.Error("failed to send activation email", zap.Error(err))
	}

	return user, nil
}

// Activate validates and consumes an activation token, then enables the account
func (s *AuthService) Activate(ctx context.Context, token string) error {
	if err := s.activationTokens.Validate(ctx, token); err != nil {
		return err
	}

	username, err := s.activationTokens.Username(ctx, token)
	if err != nil {
		return err
	}

	if err := s.activationTokens.Consume(ctx, token); err != nil {
		return err
	}

	if err := s.userRepo.Activate(ctx, username); err != nil {
		s.logger.Error("failed to activate user", zap.Error(err))
		return domain.ErrInternal
	}

	return nil
}

// ResendActivation revokes any earlier activation tokens and mails a fresh one
func (s *AuthService) ResendActivation(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Activated {
		return domain.ErrUserAlreadyExists
	}

	if err := s.activationTokens.RevokeAll(ctx, user.Username); err != nil {
		return err
	}

	token, err := s.activationTokens.Issue(ctx, user.Username)
	if err != nil {
		return err
	}

	return s.emailSender.SendActivationEmail(ctx, user.Email, token)
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, email, passwordStr string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := password.CheckPassword(passwordStr, user.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Activated {
		return nil, domain.ErrUserNotActivated
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Roles)
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, domain.ErrFailedGenerateToken
	}

	return tokenPair, nil
}
