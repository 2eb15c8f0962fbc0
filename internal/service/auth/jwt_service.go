package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scope values carried by dashboard tokens.
const (
	// ScopeUser grants access to the token subject's own analytics.
	ScopeUser = "user"

	// ScopeField additionally grants access to cohort-level analytics
	// and to other users' summaries (internal dashboards).
	ScopeField = "field"
)

// JWTService validates the bearer tokens dashboard consumers present.
// Tokens are issued by the main product backend with the shared secret;
// this service never issues tokens to end users.
type JWTService interface {
	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateToken creates a signed token for the given user and scope.
	// Exists for tests and internal tooling.
	GenerateToken(ctx context.Context, userID uuid.UUID, scope string, ttl time.Duration) (string, error)
}

// Claims represents the custom claims structure for dashboard tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid"`

	// Scope is either ScopeUser or ScopeField.
	Scope string `json:"scope"`

	// Standard registered claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// HasFieldScope reports whether the claims grant cohort-level access.
func (c *Claims) HasFieldScope() bool {
	return c.Scope == ScopeField
}
