package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/authgate/authgate-go/internal/model"
)

var ErrTokenNotFound = errors.New("access token not found")

// TokenRepository handles access-token persistence. Only the SHA-256
// digest of the token secret lives in the access_tokens table.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a new access token and sets the generated ID on the
// token struct.
func (r *TokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	query := `INSERT INTO access_tokens (user_id, name, token_hash) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, token.UserID, token.Name, token.TokenHash)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	token.ID = id
	return nil
}

// GetByID retrieves an access token by its ID.
func (r *TokenRepository) GetByID(ctx context.Context, id int64) (*model.AccessToken, error) {
	query := `SELECT id, user_id, name, token_hash, created_at FROM access_tokens WHERE id = ?`

	token := &model.AccessToken{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.Name, &token.TokenHash, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}
