package domain

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULID represents a Universally Unique Lexicographically Sortable Identifier
// @Description A string representation of ULID
// @type string
// @format ulid
type ULID = ulid.ULID

// User represents a user account in the system
type User struct {
	ID        ulid.ULID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Password is not serialized to JSON
	Roles     []string  `json:"roles"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new, not-yet-activated user instance
func NewUser(username, name, email, password string) *User {
	now := time.Now()
	return &User{
		ID:        ulid.Make(),
		Username:  username,
		Name:      name,
		Email:     email,
		Password:  password,
		Roles:     []string{"user"}, // Default role
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserDirectory answers existence questions about users. It is the only
// view of the user base the token store depends on: a weak reference by
// username, never an owning relation.
type UserDirectory interface {
	// ExistsByUsername checks if a user exists with the given username
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByUsernameAndEmail checks if a user exists with the given username and email
	ExistsByUsernameAndEmail(ctx context.Context, username, email string) (bool, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	UserDirectory

	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id ulid.ULID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user's mutable details
	Update(ctx context.Context, user *User) error

	// UpdatePassword updates a user's password hash
	UpdatePassword(ctx context.Context, username, hashedPassword string) error

	// Activate marks a user's account as activated
	Activate(ctx context.Context, username string) error

	// Delete deletes a user
	Delete(ctx context.Context, id ulid.ULID) error

	// List lists all users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, error)
}
