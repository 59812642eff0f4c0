package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ipede/identity-token-service/internal/domain"
	httperrors "github.com/ipede/identity-token-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, username, name, email, password string) (*domain.User, error)
	Activate(ctx context.Context, token string) error
	ResendActivation(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
}

type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Reset(ctx context.Context, token, newPassword string) error
}

type HandlerAuth struct {
	authService  AuthService
	resetService PasswordResetService
	logger       *zap.Logger
}

func NewAuthHandler(authService AuthService, resetService PasswordResetService, logger *zap.Logger) *HandlerAuth {
	return &HandlerAuth{
		authService:  authService,
		resetService: resetService,
		logger:       logger,
	}
}

// isTokenFailure reports whether err is one of the credential token
// failure kinds. Clients get a single generic answer for all of them.
func isTokenFailure(err error) bool {
	return errors.Is(err, domain.ErrTokenMissing) ||
		errors.Is(err, domain.ErrTokenOutOfScope) ||
		errors.Is(err, domain.ErrTokenConsumed) ||
		errors.Is(err, domain.ErrTokenRevoked) ||
		errors.Is(err, domain.ErrTokenExpired)
}

// HandleRegister creates a new account and mails an activation token
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201
// @Router /auth/register [post]
func (h *HandlerAuth) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "username, email and password are required", http.StatusBadRequest)
		return
	}

	_, err := h.authService.Register(r.Context(), req.Username, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			httperrors.RespondWithError(w, httperrors.ErrCodeConflict, "user already exists", http.StatusConflict)
			return
		}
		h.logger.Error("failed to register user", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to register user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleActivate consumes an activation token
// @Summary Activate an account
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/activate [post]
func (h *HandlerAuth) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "token is required", http.StatusBadRequest)
		return
	}

	if err := h.authService.Activate(r.Context(), req.Token); err != nil {
		if isTokenFailure(err) {
			h.logger.Warn("activation token rejected", zap.Error(err))
			httperrors.RespondInvalidToken(w)
			return
		}
		h.logger.Error("failed to activate user", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to activate user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleResendActivation reissues the activation token for an inactive account
func (h *HandlerAuth) HandleResendActivation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "email is required", http.StatusBadRequest)
		return
	}

	if err := h.authService.ResendActivation(r.Context(), req.Email); err != nil {
		// Deliberately quiet: existence of accounts is not disclosed.
		h.logger.Warn("resend activation failed", zap.Error(err))
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleLogin authenticates a user
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} domain.TokenPair
// @Router /auth/login [post]
func (h *HandlerAuth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "invalid request body", http.StatusBadRequest)
		return
	}

	tokenPair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			httperrors.RespondWithError(w, httperrors.ErrCodeAuthentication, "invalid credentials", http.StatusUnauthorized)
		case errors.Is(err, domain.ErrUserNotActivated):
			httperrors.RespondWithError(w, httperrors.ErrCodeAuthentication, "account not activated", http.StatusForbidden)
		default:
			h.logger.Error("failed to login user", zap.Error(err))
			httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to login user", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tokenPair); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// HandleForgotPassword starts the password reset workflow
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Success 204
// @Router /auth/password/forgot [post]
func (h *HandlerAuth) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "email is required", http.StatusBadRequest)
		return
	}

	if err := h.resetService.Request(r.Context(), req.Email); err != nil {
		// Same response whether or not the account exists.
		h.logger.Warn("password reset request failed", zap.Error(err))
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleResetPassword completes the password reset workflow
// @Summary Reset a password with a token
// @Tags auth
// @Accept json
// @Success 204
// @Router /auth/password/reset [post]
func (h *HandlerAuth) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "token and password are required", http.StatusBadRequest)
		return
	}

	if err := h.resetService.Reset(r.Context(), req.Token, req.Password); err != nil {
		if isTokenFailure(err) {
			h.logger.Warn("password reset token rejected", zap.Error(err))
			httperrors.RespondInvalidToken(w)
			return
		}
		h.logger.Error("failed to reset password", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to reset password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
