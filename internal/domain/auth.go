package domain

import "context"

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService defines the interface for account lifecycle operations
type AuthService interface {
	// Register creates a new user and issues an activation token
	Register(ctx context.Context, username, name, email, password string) (*User, error)

	// Activate consumes an activation token and enables the account
	Activate(ctx context.Context, token string) error

	// Login authenticates a user and returns a token pair
	Login(ctx context.Context, email, password string) (*TokenPair, error)
}

// PasswordResetService defines the interface for the password reset workflow
type PasswordResetService interface {
	// Request starts a reset: revokes earlier reset tokens, issues a fresh
	// one and mails it to the account's address
	Request(ctx context.Context, email string) error

	// Reset exchanges a valid reset token for a new password
	Reset(ctx context.Context, token, newPassword string) error
}

// UserService defines the interface for user operations
type UserService interface {
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id ULID) (*User, error)

	// UpdateUser updates a user's details
	UpdateUser(ctx context.Context, id ULID, name string) error

	// ListUsers retrieves a list of users with pagination
	ListUsers(ctx context.Context, limit, offset int) ([]*User, error)
}
