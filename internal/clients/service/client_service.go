package service

import (
	"context"

	"github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/logging"
	projectsdomain "github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

type ClientStore interface {
	Create(ctx context.Context, client *domain.Client) error
	Get(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Client, error)
	Update(ctx context.Context, id int64, clientName string) error
	Touch(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ProjectLister loads the reverse client -> projects relationship.
type ProjectLister interface {
	ListByClientIDs(ctx context.Context, clientIDs []int64) (map[int64][]projectsdomain.Project, error)
}

// ClientWithProjects is a client together with the projects it owns.
type ClientWithProjects struct {
	Client   domain.Client
	Projects []projectsdomain.Project
}

// ClientService handles client-related business logic
type ClientService struct {
	clients  ClientStore
	projects ProjectLister
}

// NewClientService creates a new client service
func NewClientService(clients ClientStore, projects ProjectLister) *ClientService {
	return &ClientService{
		clients:  clients,
		projects: projects,
	}
}

// Create persists a client owned by requester. The creator is always the
// requester, whatever the payload said.
func (s *ClientService) Create(ctx context.Context, requester *usersdomain.User, clientName string) (*ClientWithProjects, error) {
	c := &domain.Client{
		ClientName:        clientName,
		CreatedByID:       requester.ID,
		CreatedByUsername: requester.Username,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).LogInfof("clients.create", "client %d created by %s", c.ID, requester.Username)
	return &ClientWithProjects{Client: *c, Projects: []projectsdomain.Project{}}, nil
}

// Get returns one client with its projects.
func (s *ClientService) Get(ctx context.Context, id int64) (*ClientWithProjects, error) {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	grouped, err := s.projects.ListByClientIDs(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	return &ClientWithProjects{Client: *c, Projects: nonNil(grouped[c.ID])}, nil
}

// Exists reports ErrClientNotFound when no client has the given id.
func (s *ClientService) Exists(ctx context.Context, id int64) error {
	_, err := s.clients.Get(ctx, id)
	return err
}

// List returns every client matching f with its projects, loaded in one
// batch.
func (s *ClientService) List(ctx context.Context, f domain.ListFilter) ([]ClientWithProjects, error) {
	clients, err := s.clients.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]ClientWithProjects, 0, len(clients))
	if len(clients) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	grouped, err := s.projects.ListByClientIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range clients {
		out = append(out, ClientWithProjects{Client: c, Projects: nonNil(grouped[c.ID])})
	}
	return out, nil
}

// Update renames a client when clientName is set. A nil name only bumps
// updated_at, which is what an empty PATCH does.
func (s *ClientService) Update(ctx context.Context, id int64, clientName *string) (*ClientWithProjects, error) {
	var err error
	if clientName != nil {
		err = s.clients.Update(ctx, id, *clientName)
	} else {
		err = s.clients.Touch(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a client and, through the foreign key, its projects.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}

	logging.FromContext(ctx).LogInfof("clients.delete", "client %d deleted", id)
	return nil
}

func nonNil(projects []projectsdomain.Project) []projectsdomain.Project {
	if projects == nil {
		return []projectsdomain.Project{}
	}
	return projects
}
