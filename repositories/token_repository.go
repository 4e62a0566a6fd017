package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/freelancer-oauth/models"
)

// TokenRepository interface defines stored token database operations
type TokenRepository interface {
	GetByAccountID(ctx context.Context, accountID int) (*models.TokenRecord, error)
	Upsert(ctx context.Context, record *models.TokenRecord) error
	DeleteByAccountID(ctx context.Context, accountID int) error
}

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// GetByAccountID retrieves the stored token for an account
func (r *tokenRepository) GetByAccountID(ctx context.Context, accountID int) (*models.TokenRecord, error) {
	query := `
		SELECT id, account_id, access_token, refresh_token, expires, scope, token_type, updated_at
		FROM tokens
		WHERE account_id = ?
	`

	record := &models.TokenRecord{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&record.ID,
		&record.AccountID,
		&record.AccessToken,
		&record.RefreshToken,
		&record.Expires,
		&record.Scope,
		&record.TokenType,
		&record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	return record, nil
}

// Upsert stores the account's token, replacing any previous one. Each
// account holds at most one token row.
func (r *tokenRepository) Upsert(ctx context.Context, record *models.TokenRecord) error {
	query := `
		INSERT INTO tokens (account_id, access_token, refresh_token, expires, scope, token_type, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires = excluded.expires,
			scope = excluded.scope,
			token_type = excluded.token_type,
			updated_at = excluded.updated_at
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		record.AccountID,
		record.AccessToken,
		record.RefreshToken,
		record.Expires,
		record.Scope,
		record.TokenType,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	record.UpdatedAt = now
	return nil
}

// DeleteByAccountID removes the account's stored token
func (r *tokenRepository) DeleteByAccountID(ctx context.Context, accountID int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tokens WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
