// Package token provides the Redis-backed bearer-token store.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipe_backend/internal/feature/user/domain/entity"
	"recipe_backend/internal/feature/user/usecase"

	"github.com/redis/go-redis/v9"
)

// TokenRedis implements usecase.TokenRepository using Redis.
// Tokens expire via Redis TTL; a per-user set tracks outstanding tokens
// so a password change can revoke all of them.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure TokenRedis implements TokenRepository.
var _ usecase.TokenRepository = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token.
func (r *TokenRedis) tokenKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userTokensKey returns the Redis key for a user's token set.
func (r *TokenRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new token to Redis.
func (r *TokenRedis) Create(ctx context.Context, token *entity.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}

	// Store token data
	if err := r.client.Set(ctx, r.tokenKey(token.ID), data, ttl).Err(); err != nil {
		return err
	}

	// Add to user's token set
	if err := r.client.SAdd(ctx, r.userTokensKey(token.UserID), token.ID).Err(); err != nil {
		return err
	}

	return nil
}

// FindByID retrieves a token by its value.
func (r *TokenRedis) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	data, err := r.client.Get(ctx, r.tokenKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}

	var token entity.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// Revoke marks a token as revoked.
func (r *TokenRedis) Revoke(ctx context.Context, id string) error {
	token, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	token.RevokedAt = &now

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	// Keep short TTL for revoked tokens (for audit purposes)
	return r.client.Set(ctx, r.tokenKey(id), data, 24*time.Hour).Err()
}

// RevokeAllByUserID revokes all tokens for a user.
// Token keys expire via TTL without touching the per-user set, so members
// that no longer resolve are pruned here to keep the set from growing.
func (r *TokenRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		err := r.Revoke(ctx, id)
		if errors.Is(err, usecase.ErrTokenNotFound) {
			if err := r.client.SRem(ctx, r.userTokensKey(userID), id).Err(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteExpired removes expired tokens (handled by Redis TTL).
func (r *TokenRedis) DeleteExpired(ctx context.Context) (int64, error) {
	// Redis handles expiration automatically via TTL
	return 0, nil
}
