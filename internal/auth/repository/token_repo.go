package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clientdesk/clientdesk-backend/internal/auth/domain"
)

const (
	tokenKeyPrefix   = "auth:token:" // auth:token:{key} -> user id
	userTokensPrefix = "auth:user:"  // set of token keys for a user: auth:user:{user_id}:tokens
)

// TokenRepository stores opaque API tokens in Redis.
type TokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenRepository creates a TokenRepository. A zero ttl stores tokens
// without expiry.
func NewTokenRepository(client *redis.Client, ttl time.Duration) *TokenRepository {
	return &TokenRepository{client: client, ttl: ttl}
}

// Issue creates a new token for userID and returns its key.
func (r *TokenRepository) Issue(ctx context.Context, userID int64) (string, error) {
	key := strings.ReplaceAll(uuid.NewString(), "-", "")
	setKey := r.userTokensKey(userID)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.tokenKey(key), userID, r.ttl)
	pipe.SAdd(ctx, setKey, key)
	if r.ttl > 0 {
		pipe.Expire(ctx, setKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return key, nil
}

// Resolve returns the user id a token belongs to.
func (r *TokenRepository) Resolve(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Get(ctx, r.tokenKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt token entry: %w", err)
	}
	return userID, nil
}

// Revoke deletes a single token. Unknown tokens report ErrInvalidToken.
func (r *TokenRepository) Revoke(ctx context.Context, key string) error {
	userID, err := r.Resolve(ctx, key)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.tokenKey(key))
	pipe.SRem(ctx, r.userTokensKey(userID), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAll deletes every token issued to userID and returns how many were
// removed.
func (r *TokenRepository) RevokeAll(ctx context.Context, userID int64) (int, error) {
	setKey := r.userTokensKey(userID)
	keys, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list tokens: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, key := range keys {
		pipe.Del(ctx, r.tokenKey(key))
	}
	pipe.Del(ctx, setKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return len(keys), nil
}

func (r *TokenRepository) tokenKey(key string) string {
	return tokenKeyPrefix + key
}

func (r *TokenRepository) userTokensKey(userID int64) string {
	return fmt.Sprintf("%s%d:tokens", userTokensPrefix, userID)
}
