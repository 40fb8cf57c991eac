package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clientdesk/clientdesk-backend/config"
	authrepo "github.com/clientdesk/clientdesk-backend/internal/auth/repository"
	authservice "github.com/clientdesk/clientdesk-backend/internal/auth/service"
	"github.com/clientdesk/clientdesk-backend/internal/bootstrap"
	"github.com/clientdesk/clientdesk-backend/internal/storage/postgres"
	userrepo "github.com/clientdesk/clientdesk-backend/internal/users/repository"
)

// runIssueToken prints a credential for username. Token mode stores an opaque
// key in Redis; JWT mode signs a token valid for AUTH_TOKEN_TTL.
func runIssueToken(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: manage issue-token <username>")
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := userrepo.NewUserRepository(db).GetByUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("lookup %q: %w", args[0], err)
	}

	var token string
	switch cfg.Auth.Mode {
	case config.AuthModeToken:
		tokens, closeFn, err := openTokenRepository(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		token, err = tokens.Issue(ctx, user.ID)
		if err != nil {
			return err
		}
	case config.AuthModeJWT:
		token, err = authservice.SignToken(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, user.Username, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("AUTH_MODE=%s does not issue tokens locally", cfg.Auth.Mode)
	}

	log.Info().Str("username", user.Username).Dur("ttl", cfg.Auth.TokenTTL).Msg("token issued")
	fmt.Println(token)
	return nil
}

func runRevokeToken(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: manage revoke-token <token>")
	}

	tokens, closeFn, err := openTokenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := tokens.Revoke(ctx, args[0]); err != nil {
		return err
	}
	log.Info().Msg("token revoked")
	return nil
}

func runRevokeUserTokens(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: manage revoke-user-tokens <username>")
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := userrepo.NewUserRepository(db).GetByUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("lookup %q: %w", args[0], err)
	}

	tokens, closeFn, err := openTokenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := tokens.RevokeAll(ctx, user.ID)
	if err != nil {
		return err
	}
	log.Info().Str("username", user.Username).Int("revoked", n).Msg("tokens revoked")
	return nil
}

func openTokenRepository(ctx context.Context, cfg *config.Config) (*authrepo.TokenRepository, func(), error) {
	if cfg.Auth.Mode != config.AuthModeToken {
		return nil, nil, fmt.Errorf("token commands require AUTH_MODE=%s", config.AuthModeToken)
	}

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return authrepo.NewTokenRepository(rdb, cfg.Auth.TokenTTL), func() { rdb.Close() }, nil
}
