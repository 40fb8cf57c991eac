package domain

import (
	"errors"
	"time"

	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is a unit of work belonging to one client, with zero or more
// assigned users. It is storage-agnostic and shared by the repository,
// service and HTTP layers.
type Project struct {
	ID          int64              `json:"id"`
	ProjectName string             `json:"project_name"`
	ClientID    int64              `json:"client_id"`
	ClientName  string             `json:"client"`
	CreatedByID int64              `json:"created_by"`
	Users       []usersdomain.User `json:"users"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ListFilter narrows a project listing. Zero values mean "no constraint".
type ListFilter struct {
	// Search matches project_name, the client's name or the creator's
	// username, case-insensitively.
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
