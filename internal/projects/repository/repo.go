package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	clientsdomain "github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	"github.com/clientdesk/clientdesk-backend/internal/storage/postgres"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const clientFKConstraint = "projects_client_id_fkey"

const selectProjects = `
SELECT p.id, p.project_name, p.client_id, c.client_name, p.created_by, p.created_at
FROM projects p
JOIN clients c ON c.id = p.client_id
JOIN users u ON u.id = p.created_by
`

// Create inserts the project and replaces its user set in one transaction.
// A missing client surfaces as clientsdomain.ErrClientNotFound and nothing
// is persisted.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project, userIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
INSERT INTO projects (project_name, client_id, created_by)
VALUES ($1, $2, $3)
RETURNING id, created_at;
`
	err = tx.QueryRowContext(ctx, q, p.ProjectName, p.ClientID, p.CreatedByID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) && postgres.ConstraintName(err) == clientFKConstraint {
			return clientsdomain.ErrClientNotFound
		}
		return fmt.Errorf("insert project: %w", err)
	}

	if err := replaceUsers(ctx, tx, p.ID, userIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit project: %w", err)
	}
	return nil
}

// replaceUsers sets the project's assignment to exactly the given users.
// Ids that do not match a user are dropped by the join.
func replaceUsers(ctx context.Context, tx *sql.Tx, projectID int64, userIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_users WHERE project_id = $1;`, projectID); err != nil {
		return fmt.Errorf("clear project users: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	const q = `
INSERT INTO project_users (project_id, user_id)
SELECT $1, u.id FROM users u WHERE u.id = ANY($2)
ON CONFLICT DO NOTHING;
`
	if _, err := tx.ExecContext(ctx, q, projectID, pq.Array(userIDs)); err != nil {
		return fmt.Errorf("assign project users: %w", err)
	}
	return nil
}

// Get returns a single project with its client name and users.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	q := selectProjects + `WHERE p.id = $1;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	out := []domain.Project{*p}
	if err := r.attachUsers(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List returns every project matching the filter, oldest first.
func (r *ProjectRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	q := selectProjects + `
WHERE ($1 = '' OR p.project_name ILIKE '%' || $1 || '%'
               OR c.client_name ILIKE '%' || $1 || '%'
               OR u.username ILIKE '%' || $1 || '%')
  AND ($2::timestamptz IS NULL OR p.created_at >= $2)
  AND ($3::timestamptz IS NULL OR p.created_at < $3)
ORDER BY p.id;
`
	return r.query(ctx, q, f.Search, postgres.NullTime(f.CreatedAfter), postgres.NullTime(f.CreatedBefore))
}

// ListAssignedTo returns the projects whose user set contains userID.
func (r *ProjectRepository) ListAssignedTo(ctx context.Context, userID int64) ([]domain.Project, error) {
	q := selectProjects + `
WHERE EXISTS (
    SELECT 1 FROM project_users pu
    WHERE pu.project_id = p.id AND pu.user_id = $1
)
ORDER BY p.id;
`
	return r.query(ctx, q, userID)
}

// ListByClientIDs groups the projects of the given clients by client id.
func (r *ProjectRepository) ListByClientIDs(ctx context.Context, clientIDs []int64) (map[int64][]domain.Project, error) {
	out := make(map[int64][]domain.Project, len(clientIDs))
	if len(clientIDs) == 0 {
		return out, nil
	}

	q := selectProjects + `
WHERE p.client_id = ANY($1)
ORDER BY p.id;
`
	items, err := r.query(ctx, q, pq.Array(clientIDs))
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ClientID] = append(out[p.ClientID], p)
	}
	return out, nil
}

func (r *ProjectRepository) query(ctx context.Context, q string, args ...interface{}) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachUsers(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachUsers loads the assigned users of every project with one query.
func (r *ProjectRepository) attachUsers(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, len(projects))
	index := make(map[int64]int, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
		index[projects[i].ID] = i
		projects[i].Users = []usersdomain.User{}
	}

	const q = `
SELECT pu.project_id, u.id, u.username, u.email
FROM project_users pu
JOIN users u ON u.id = pu.user_id
WHERE pu.project_id = ANY($1)
ORDER BY pu.project_id, u.id;
`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load project users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int64
		var u usersdomain.User
		if err := rows.Scan(&projectID, &u.ID, &u.Username, &u.Email); err != nil {
			return err
		}
		if i, ok := index[projectID]; ok {
			projects[i].Users = append(projects[i].Users, u)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.ProjectName, &p.ClientID, &p.ClientName, &p.CreatedByID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
