package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IssuedToken is a signed access token with its metadata
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer signs access tokens for authenticated users
// Implemented by the JWT service in infrastructure
type TokenIssuer interface {
	Issue(userID uuid.UUID, isAdmin bool) (IssuedToken, error)
}

// TokenRevoker invalidates issued tokens until they expire on their own
// Implemented by the Redis-backed blacklist in infrastructure
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}
