package http

import (
	"context"

	"github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/clients/service"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

// ClientService is the behaviour the handlers need from service.ClientService.
type ClientService interface {
	Create(ctx context.Context, requester *usersdomain.User, clientName string) (*service.ClientWithProjects, error)
	Get(ctx context.Context, id int64) (*service.ClientWithProjects, error)
	Exists(ctx context.Context, id int64) error
	List(ctx context.Context, f domain.ListFilter) ([]service.ClientWithProjects, error)
	Update(ctx context.Context, id int64, clientName *string) (*service.ClientWithProjects, error)
	Delete(ctx context.Context, id int64) error
}

// Handler bundles the dependencies for client HTTP endpoints.
type Handler struct {
	svc ClientService
}

func New(svc ClientService) *Handler {
	return &Handler{svc: svc}
}
