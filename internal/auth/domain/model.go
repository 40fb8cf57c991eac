package domain

import (
	"context"
	"errors"

	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

var (
	ErrUnauthenticated       = errors.New("authentication credentials were not provided")
	ErrInvalidToken          = errors.New("invalid token")
	ErrRevocationUnsupported = errors.New("token revocation not supported")
)

// Authenticator resolves request credentials to a User or rejects them with
// ErrUnauthenticated / ErrInvalidToken.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*usersdomain.User, error)
}

// TokenRevoker is implemented by backends that can invalidate an issued
// credential before it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, credential string) error
}
