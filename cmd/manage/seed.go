package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/clientdesk/clientdesk-backend/config"
	"github.com/clientdesk/clientdesk-backend/internal/storage/postgres"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
	userrepo "github.com/clientdesk/clientdesk-backend/internal/users/repository"
)

// seedFile is the layout of a seed-users YAML document:
//
//	users:
//	  - username: alice
//	    email: alice@example.com
//	    firebase_uid: abc123   # optional
type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	FirebaseUID string `yaml:"firebase_uid"`
}

func parseSeedFile(data []byte) ([]usersdomain.User, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]bool, len(f.Users))
	out := make([]usersdomain.User, 0, len(f.Users))
	for i, su := range f.Users {
		username := strings.TrimSpace(su.Username)
		if username == "" {
			return nil, fmt.Errorf("users[%d]: username is required", i)
		}
		if seen[username] {
			return nil, fmt.Errorf("users[%d]: duplicate username %q", i, username)
		}
		seen[username] = true

		u := usersdomain.User{Username: username, Email: strings.TrimSpace(su.Email)}
		if uid := strings.TrimSpace(su.FirebaseUID); uid != "" {
			u.FirebaseUID = &uid
		}
		out = append(out, u)
	}
	return out, nil
}

func runSeedUsers(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: manage seed-users <file.yaml>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	users, err := parseSeedFile(data)
	if err != nil {
		return err
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := userrepo.NewUserRepository(db)
	for i := range users {
		if err := repo.Upsert(ctx, &users[i]); err != nil {
			return err
		}
		log.Info().Int64("id", users[i].ID).Str("username", users[i].Username).Msg("user seeded")
	}
	return nil
}
