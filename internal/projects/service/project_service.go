package service

import (
	"context"

	clientsdomain "github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/logging"
	"github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project, userIDs []int64) error
	Get(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error)
	ListAssignedTo(ctx context.Context, userID int64) ([]domain.Project, error)
}

type ClientGetter interface {
	Get(ctx context.Context, id int64) (*clientsdomain.Client, error)
}

type UserFinder interface {
	ListByIDs(ctx context.Context, ids []int64) ([]usersdomain.User, error)
}

// CreateInput is a validated project creation request.
type CreateInput struct {
	ProjectName string
	ClientID    int64
	UserIDs     []int64
}

// ProjectService handles project-related business logic
type ProjectService struct {
	projects ProjectStore
	clients  ClientGetter
	users    UserFinder
}

// NewProjectService creates a new project service
func NewProjectService(projects ProjectStore, clients ClientGetter, users UserFinder) *ProjectService {
	return &ProjectService{
		projects: projects,
		clients:  clients,
		users:    users,
	}
}

// Create persists a project for an existing client and assigns the subset of
// in.UserIDs that name real users. Unknown user ids are dropped; an unknown
// client fails with ErrClientNotFound before anything is written.
func (s *ProjectService) Create(ctx context.Context, requester *usersdomain.User, in CreateInput) (*domain.Project, error) {
	client, err := s.clients.Get(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	found, err := s.users.ListByIDs(ctx, in.UserIDs)
	if err != nil {
		return nil, err
	}
	userIDs := make([]int64, 0, len(found))
	for _, u := range found {
		userIDs = append(userIDs, u.ID)
	}
	if dropped := len(uniq(in.UserIDs)) - len(userIDs); dropped > 0 {
		logging.FromContext(ctx).LogWarnf("projects.create", "ignoring %d unknown user id(s)", dropped)
	}

	p := &domain.Project{
		ProjectName: in.ProjectName,
		ClientID:    client.ID,
		ClientName:  client.ClientName,
		CreatedByID: requester.ID,
	}
	if err := s.projects.Create(ctx, p, userIDs); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).LogInfof("projects.create", "project %d created for client %d", p.ID, client.ID)
	return s.projects.Get(ctx, p.ID)
}

// List returns all projects matching f.
func (s *ProjectService) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	return s.projects.List(ctx, f)
}

// Mine returns the projects requester is assigned to.
func (s *ProjectService) Mine(ctx context.Context, requester *usersdomain.User) ([]domain.Project, error) {
	return s.projects.ListAssignedTo(ctx, requester.ID)
}

func uniq(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
