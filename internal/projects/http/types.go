package http

import (
	"context"

	"github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	"github.com/clientdesk/clientdesk-backend/internal/projects/service"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

// ProjectService is the behaviour the handlers need from service.ProjectService.
type ProjectService interface {
	Create(ctx context.Context, requester *usersdomain.User, in service.CreateInput) (*domain.Project, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error)
	Mine(ctx context.Context, requester *usersdomain.User) ([]domain.Project, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc ProjectService
}

func New(svc ProjectService) *Handler {
	return &Handler{svc: svc}
}
