package domain

import "errors"

var (
	// ErrUnknownUser is returned when a token operation targets a user the
	// directory does not recognize
	ErrUnknownUser = errors.New("unknown user")

	// ErrTokenMissing is returned when no token exists for a value, or when
	// a scope-qualified lookup finds none under the caller's scope
	ErrTokenMissing = errors.New("token not found")

	// ErrTokenOutOfScope is returned when a token exists but belongs to a
	// different scope than the store's
	ErrTokenOutOfScope = errors.New("token out of scope")

	// ErrTokenConsumed is returned when a token has already been spent
	ErrTokenConsumed = errors.New("token already consumed")

	// ErrTokenRevoked is returned when a token was explicitly invalidated
	ErrTokenRevoked = errors.New("token revoked")

	// ErrTokenExpired is returned when the current time is at or past the
	// token's expiration
	ErrTokenExpired = errors.New("token expired")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when a user with the same username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotActivated is returned when a user tries to log in before
	// consuming their activation token
	ErrUserNotActivated = errors.New("user not activated")

	// ErrInvalidCredentials is returned when login credentials are invalid
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrFailedGenerateToken is returned when signing a JWT pair fails
	ErrFailedGenerateToken = errors.New("failed to generate token")

	// ErrDatabaseQuery is returned when a query fails for reasons other than
	// an empty result
	ErrDatabaseQuery = errors.New("database query failed")

	// ErrInternal is returned when there is an internal server error
	ErrInternal = errors.New("internal server error")
)
