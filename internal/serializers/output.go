package serializers

import (
	"time"

	clientsdomain "github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	projectsdomain "github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

type UserOut struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProjectOut renders the client by display name and the assigned users
// as nested read-only objects.
type ProjectOut struct {
	ID          int64     `json:"id"`
	Users       []UserOut `json:"users"`
	Client      string    `json:"client"`
	ProjectName string    `json:"project_name"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   int64     `json:"created_by"`
}

// ClientOut renders the creator by display name and embeds the client's
// projects.
type ClientOut struct {
	ID         int64        `json:"id"`
	Projects   []ProjectOut `json:"projects"`
	CreatedBy  string       `json:"created_by"`
	ClientName string       `json:"client_name"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func User(u usersdomain.User) UserOut {
	return UserOut{ID: u.ID, Username: u.Username, Email: u.Email}
}

func Users(in []usersdomain.User) []UserOut {
	out := make([]UserOut, 0, len(in))
	for _, u := range in {
		out = append(out, User(u))
	}
	return out
}

func Project(p projectsdomain.Project) ProjectOut {
	return ProjectOut{
		ID:          p.ID,
		Users:       Users(p.Users),
		Client:      p.ClientName,
		ProjectName: p.ProjectName,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedByID,
	}
}

func Projects(in []projectsdomain.Project) []ProjectOut {
	out := make([]ProjectOut, 0, len(in))
	for _, p := range in {
		out = append(out, Project(p))
	}
	return out
}

func Client(c clientsdomain.Client, projects []projectsdomain.Project) ClientOut {
	return ClientOut{
		ID:         c.ID,
		Projects:   Projects(projects),
		CreatedBy:  c.CreatedByUsername,
		ClientName: c.ClientName,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
