package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTokenPrefix = "gigit:session:"

type redisTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTokenStore returns a Redis-backed TokenStore. Keys expire after ttl.
func NewRedisTokenStore(client *redis.Client, ttl time.Duration) TokenStore {
	return &redisTokenStore{client: client, ttl: ttl}
}

func (s *redisTokenStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	token, err := s.client.Get(ctx, redisTokenPrefix+storageKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisTokenStore) Set(ctx context.Context, sessionID, key, token string) error {
	return s.client.Set(ctx, redisTokenPrefix+storageKey(sessionID, key), token, s.ttl).Err()
}

func (s *redisTokenStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.client.Del(ctx, redisTokenPrefix+storageKey(sessionID, key)).Err()
}
