package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/clientdesk/clientdesk-backend/internal/storage/postgres"
	"github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, firebase_uid, created_at`

// GetByID retrieves a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername retrieves a user by their unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, query, username)
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE firebase_uid = $1`
	return r.getOne(ctx, query, uid)
}

// ListByIDs returns the users whose id is in ids, ordered by id.
// Unknown ids are skipped rather than reported.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]domain.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert creates or updates a user keyed by username (used for seeding)
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, firebase_uid)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET email = EXCLUDED.email,
		    firebase_uid = COALESCE(EXCLUDED.firebase_uid, users.firebase_uid)
		RETURNING id, created_at
	`

	var firebaseUID sql.NullString
	if user.FirebaseUID != nil && *user.FirebaseUID != "" {
		firebaseUID = sql.NullString{String: *user.FirebaseUID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, firebaseUID).
		Scan(&user.ID, &user.CreatedAt)
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("upsert user %q: %w", user.Username, domain.ErrFirebaseUIDTaken)
	}
	if err != nil {
		return fmt.Errorf("upsert user %q: %w", user.Username, err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var firebaseUID sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &firebaseUID, &u.CreatedAt); err != nil {
		return nil, err
	}
	if firebaseUID.Valid {
		u.FirebaseUID = &firebaseUID.String
	}
	return &u, nil
}
