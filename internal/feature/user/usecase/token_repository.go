package usecase

import (
	"context"

	"recipe_backend/internal/feature/user/domain/entity"
)

// TokenRepository abstracts the persistence layer for bearer tokens.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TokenRepository interface {
	// Create persists a new token to the storage.
	Create(ctx context.Context, token *entity.Token) error

	// FindByID retrieves a token by its value.
	// It returns ErrTokenNotFound if the token does not exist.
	FindByID(ctx context.Context, id string) (*entity.Token, error)

	// Revoke marks a token as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByUserID revokes all tokens for a given user.
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes all expired tokens from storage.
	// Returns the number of deleted tokens.
	DeleteExpired(ctx context.Context) (int64, error)
}
