package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/interfaces/http/dto"
	httperrors "github.com/ipede/identity-token-service/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

type UserService interface {
	GetUser(ctx context.Context, id domain.ULID) (*domain.User, error)
	UpdateUser(ctx context.Context, id domain.ULID, name string) error
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

type HandlerUser struct {
	userService UserService
	logger      *zap.Logger
}

func NewUserHandler(userService UserService, logger *zap.Logger) *HandlerUser {
	return &HandlerUser{
		userService: userService,
		logger:      logger,
	}
}

// GetUserHandler returns a single user
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /users/{id} [get]
func (h *HandlerUser) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseULID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httperrors.RespondWithError(w, httperrors.ErrCodeNotFound, "user not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get user", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to get user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dto.NewUserResponse(user)); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// ListUsersHandler returns a page of users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (h *HandlerUser) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)

	users, err := h.userService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to list users", http.StatusInternalServerError)
		return
	}

	response := make([]*dto.UserResponse, len(users))
	for i, user := range users {
		response[i] = dto.NewUserResponse(user)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// UpdateUserHandler updates a user's details
// @Summary Update a user
// @Tags users
// @Accept json
// @Success 204
// @Router /users/{id} [put]
func (h *HandlerUser) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseULID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateUser(r.Context(), id, req.Name); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httperrors.RespondWithError(w, httperrors.ErrCodeNotFound, "user not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update user", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "failed to update user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
