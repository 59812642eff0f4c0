package repository

import (
	"context"
	"errors"

	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type UserRepository struct {
	logger *zap.Logger
	db     *database.Postgres
}

func NewUserRepository(db *database.Postgres, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

const userColumns = "id, username, name, email, password, roles, activated, created_at, updated_at"

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.Exec(ctx, `
		INSERT INTO users (id, username, name, email, password, roles, activated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID.String(), user.Username, user.Name, user.Email, user.Password,
		user.Roles, user.Activated, user.CreatedAt, user.UpdatedAt)
}

func (r *UserRepository) FindByID(ctx context.Context, id ulid.ULID) (*domain.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id.String())
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepository) findOne(ctx context.Context, sql string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID, &user.Username, &user.Name, &user.Email, &user.Password,
		&user.Roles, &user.Activated, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to find user", zap.Error(err))
		return nil, domain.ErrDatabaseQuery
	}
	return user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE username = $1", username).Scan(&count)
	if err != nil {
		r.logger.Error("failed to check if user exists", zap.Error(err))
		return false, domain.ErrDatabaseQuery
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByUsernameAndEmail(ctx context.Context, username, email string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE username = $1 OR email = $2", username, email).Scan(&count)
	if err != nil {
		r.logger.Error("failed to check if user exists", zap.Error(err))
		return false, domain.ErrDatabaseQuery
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, user.Name, user.UpdatedAt, user.ID.String())
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, hashedPassword string) error {
	return r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, updated_at = NOW()
		WHERE username = $2
	`, hashedPassword, username)
}

func (r *UserRepository) Activate(ctx context.Context, username string) error {
	return r.db.Exec(ctx, `
		UPDATE users
		SET activated = TRUE, updated_at = NOW()
		WHERE username = $1
	`, username)
}

func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id.String())
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, domain.ErrDatabaseQuery
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(
			&user.ID, &user.Username, &user.Name, &user.Email, &user.Password,
			&user.Roles, &user.Activated, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan user", zap.Error(err))
			return nil, domain.ErrDatabaseQuery
		}
		users = append(users, user)
	}
	return users, nil
}
