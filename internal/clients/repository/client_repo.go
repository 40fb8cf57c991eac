package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/storage/postgres"
)

// ClientRepository provides persistence operations for clients
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const selectClients = `
SELECT c.id, c.client_name, c.created_by, u.username, c.created_at, c.updated_at
FROM clients c
JOIN users u ON u.id = c.created_by
`

// Create inserts a new client and fills in its generated fields.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	const q = `
INSERT INTO clients (client_name, created_by)
VALUES ($1, $2)
RETURNING id, created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, client.ClientName, client.CreatedByID).
		Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Get returns a single client by id.
func (r *ClientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	q := selectClients + `WHERE c.id = $1;`

	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns every client matching the filter, oldest first.
func (r *ClientRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Client, error) {
	q := selectClients + `
WHERE ($1 = '' OR c.client_name ILIKE '%' || $1 || '%' OR u.username ILIKE '%' || $1 || '%')
  AND ($2::timestamptz IS NULL OR c.created_at >= $2)
  AND ($3::timestamptz IS NULL OR c.created_at < $3)
ORDER BY c.id;
`
	rows, err := r.db.QueryContext(ctx, q, f.Search, postgres.NullTime(f.CreatedAfter), postgres.NullTime(f.CreatedBefore))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Client, 0, 16)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a client and bumps updated_at.
func (r *ClientRepository) Update(ctx context.Context, id int64, clientName string) error {
	const q = `
UPDATE clients
SET client_name = $2, updated_at = now()
WHERE id = $1;
`
	return r.execOne(ctx, q, id, clientName)
}

// Touch bumps updated_at without changing any field.
func (r *ClientRepository) Touch(ctx context.Context, id int64) error {
	const q = `UPDATE clients SET updated_at = now() WHERE id = $1;`
	return r.execOne(ctx, q, id)
}

// Delete removes a client. Its projects and their assignments go with it
// through ON DELETE CASCADE.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM clients WHERE id = $1;`
	return r.execOne(ctx, q, id)
}

func (r *ClientRepository) execOne(ctx context.Context, q string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.ClientName, &c.CreatedByID, &c.CreatedByUsername, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
