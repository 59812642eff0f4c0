package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TokenRepository persists credential tokens in the shared tokens table.
// The value column is the primary key, so uniqueness holds across all
// scopes.
type TokenRepository struct {
	logger *zap.Logger
	db     *database.Postgres
}

func NewTokenRepository(db *database.Postgres, logger *zap.Logger) *TokenRepository {
	return &TokenRepository{
		db:     db,
		logger: logger,
	}
}

const tokenColumns = "value, username, scope, created_at, expires_at, consumed, revoked"

func (r *TokenRepository) FindByValue(ctx context.Context, value string) (*domain.Token, error) {
	token := &domain.Token{}
	err := r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM tokens
		WHERE value = $1
	`, value).Scan(
		&token.Value,
		&token.Username,
		&token.Scope,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.Consumed,
		&token.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenMissing
		}
		r.logger.Error("failed to find token", zap.Error(err))
		return nil, domain.ErrDatabaseQuery
	}
	return token, nil
}

func (r *TokenRepository) FindByValueAndScope(ctx context.Context, value, scope string) (*domain.Token, error) {
	token := &domain.Token{}
	err := r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM tokens
		WHERE value = $1 AND scope = $2
	`, value, scope).Scan(
		&token.Value,
		&token.Username,
		&token.Scope,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.Consumed,
		&token.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenMissing
		}
		r.logger.Error("failed to find token by scope", zap.String("scope", scope), zap.Error(err))
		return nil, domain.ErrDatabaseQuery
	}
	return token, nil
}

func (r *TokenRepository) FindUnrevokedByUserAndScope(ctx context.Context, username, scope string) ([]*domain.Token, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tokenColumns+`
		FROM tokens
		WHERE username = $1 AND scope = $2 AND NOT revoked
	`, username, scope)
	if err != nil {
		r.logger.Error("failed to list unrevoked tokens", zap.String("scope", scope), zap.Error(err))
		return nil, domain.ErrDatabaseQuery
	}
	defer rows.Close()

	var tokens []*domain.Token
	for rows.Next() {
		token := &domain.Token{}
		err := rows.Scan(
			&token.Value,
			&token.Username,
			&token.Scope,
			&token.CreatedAt,
			&token.ExpiresAt,
			&token.Consumed,
			&token.Revoked,
		)
		if err != nil {
			r.logger.Error("failed to scan token", zap.Error(err))
			return nil, domain.ErrDatabaseQuery
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

const upsertTokenSQL = `
	INSERT INTO tokens (value, username, scope, created_at, expires_at, consumed, revoked)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (value) DO UPDATE
	SET consumed = EXCLUDED.consumed, revoked = EXCLUDED.revoked
`

func (r *TokenRepository) Save(ctx context.Context, token *domain.Token) error {
	return r.db.Exec(ctx, upsertTokenSQL,
		token.Value, token.Username, token.Scope,
		token.CreatedAt, token.ExpiresAt, token.Consumed, token.Revoked)
}

func (r *TokenRepository) SaveAll(ctx context.Context, tokens []*domain.Token) error {
	batch := &pgx.Batch{}
	for _, token := range tokens {
		batch.Queue(upsertTokenSQL,
			token.Value, token.Username, token.Scope,
			token.CreatedAt, token.ExpiresAt, token.Consumed, token.Revoked)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range tokens {
		if _, err := results.Exec(); err != nil {
			r.logger.Error("failed to save token batch", zap.Error(err))
			return domain.ErrDatabaseQuery
		}
	}
	return nil
}

// MarkConsumed is a conditional update: it only touches rows that are not
// yet consumed, so two racing consumers see exactly one affected row.
func (r *TokenRepository) MarkConsumed(ctx context.Context, value, scope string) (bool, error) {
	tag, err := r.db.ExecRaw(ctx, `
		UPDATE tokens
		SET consumed = TRUE
		WHERE value = $1 AND scope = $2 AND NOT consumed
	`, value, scope)
	if err != nil {
		r.logger.Error("failed to mark token consumed", zap.Error(err))
		return false, domain.ErrDatabaseQuery
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteExpired removes tokens that expired before the given cutoff. This
// is housekeeping; the state machine itself never deletes records.
func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	return r.db.Exec(ctx, `
		DELETE FROM tokens
		WHERE expires_at < $1
	`, before)
}
