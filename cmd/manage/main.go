package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/clientdesk/clientdesk-backend/config"
	"github.com/clientdesk/clientdesk-backend/internal/logging"
)

const usage = `usage: manage <command> [args]

commands:
  migrate                     apply pending database migrations
  seed-users <file.yaml>      create or update users from a YAML file
  issue-token <username>      issue an API token for a user
  revoke-token <token>        revoke a single API token
  revoke-user-tokens <user>   revoke every API token of a user`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.App.LogLevel, cfg.App.Environment)

	ctx := context.Background()
	args := os.Args[2:]

	switch os.Args[1] {
	case "migrate":
		err = runMigrate(ctx, cfg)
	case "seed-users":
		err = runSeedUsers(ctx, cfg, args)
	case "issue-token":
		err = runIssueToken(ctx, cfg, args)
	case "revoke-token":
		err = runRevokeToken(ctx, cfg, args)
	case "revoke-user-tokens":
		err = runRevokeUserTokens(ctx, cfg, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		log.Fatal().Msgf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}
