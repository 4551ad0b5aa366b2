package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresTokenStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresTokenStore returns a Postgres-backed TokenStore using the
// session_tokens table.
func NewPostgresTokenStore(pool *pgxpool.Pool, ttl time.Duration) TokenStore {
	return &postgresTokenStore{pool: pool, ttl: ttl}
}

func (s *postgresTokenStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	const query = `
        SELECT token FROM session_tokens
        WHERE session_id=$1 AND storage_key=$2
          AND (expires_at IS NULL OR expires_at > NOW())`

	var token string
	if err := s.pool.QueryRow(ctx, query, sessionID, key).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return token, nil
}

func (s *postgresTokenStore) Set(ctx context.Context, sessionID, key, token string) error {
	const query = `
        INSERT INTO session_tokens (session_id, storage_key, token, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (session_id, storage_key)
        DO UPDATE SET token=EXCLUDED.token, expires_at=EXCLUDED.expires_at, updated_at=NOW()`

	var expiresAt *time.Time
	if s.ttl > 0 {
		t := time.Now().Add(s.ttl)
		expiresAt = &t
	}
	_, err := s.pool.Exec(ctx, query, sessionID, key, token, expiresAt)
	return err
}

func (s *postgresTokenStore) Delete(ctx context.Context, sessionID, key string) error {
	const query = `DELETE FROM session_tokens WHERE session_id=$1 AND storage_key=$2`
	_, err := s.pool.Exec(ctx, query, sessionID, key)
	return err
}
