package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clientdesk/clientdesk-backend/config"
	"github.com/clientdesk/clientdesk-backend/internal/auth"
	authdomain "github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	authrepo "github.com/clientdesk/clientdesk-backend/internal/auth/repository"
	authservice "github.com/clientdesk/clientdesk-backend/internal/auth/service"
)

// NewAuthenticator builds the authenticator selected by AUTH_MODE. The
// returned revoker is nil unless the backend supports revocation.
func NewAuthenticator(ctx context.Context, cfg *config.AuthConfig, users authservice.UserLookup, rdb *redis.Client) (authdomain.Authenticator, authdomain.TokenRevoker, error) {
	switch cfg.Mode {
	case config.AuthModeToken:
		if rdb == nil {
			return nil, nil, fmt.Errorf("token auth requires redis")
		}
		a := authservice.NewTokenAuthenticator(authrepo.NewTokenRepository(rdb, cfg.TokenTTL), users)
		return a, a, nil
	case config.AuthModeJWT:
		return authservice.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, users), nil, nil
	case config.AuthModeFirebase:
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return nil, nil, err
		}
		return authservice.NewFirebaseAuthenticator(client, users), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
