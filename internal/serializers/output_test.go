package serializers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientsdomain "github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	projectsdomain "github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

func TestProjectOutput(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := projectsdomain.Project{
		ID:          7,
		ProjectName: "Website",
		ClientID:    1,
		ClientName:  "Acme",
		CreatedByID: 5,
		Users:       []usersdomain.User{{ID: 2, Username: "carol", Email: "carol@example.com"}},
		CreatedAt:   created,
	}

	raw, err := json.Marshal(Project(p))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, float64(7), got["id"])
	assert.Equal(t, "Acme", got["client"])
	assert.Equal(t, "Website", got["project_name"])
	assert.Equal(t, float64(5), got["created_by"])
	assert.Equal(t, "2024-03-01T12:00:00Z", got["created_at"])
	assert.NotContains(t, got, "client_id")

	users, ok := got["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 1)
	assert.Equal(t, map[string]interface{}{
		"id":       float64(2),
		"username": "carol",
		"email":    "carol@example.com",
	}, users[0])
}

func TestClientOutput(t *testing.T) {
	now := time.Now().UTC()
	c := clientsdomain.Client{
		ID:                1,
		ClientName:        "Acme",
		CreatedByID:       3,
		CreatedByUsername: "alice",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	t.Run("creator rendered by display name", func(t *testing.T) {
		raw, err := json.Marshal(Client(c, nil))
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "alice", got["created_by"])
		assert.Equal(t, "Acme", got["client_name"])
		assert.Equal(t, []interface{}{}, got["projects"])
		assert.Contains(t, got, "updated_at")
	})

	t.Run("embeds projects", func(t *testing.T) {
		out := Client(c, []projectsdomain.Project{{ID: 9, ProjectName: "X", ClientName: "Acme"}})
		require.Len(t, out.Projects, 1)
		assert.Equal(t, "X", out.Projects[0].ProjectName)
		assert.Equal(t, []UserOut{}, out.Projects[0].Users)
	})
}

func TestClientNameRoundTrip(t *testing.T) {
	for _, name := range []string{"Acme", "Ünïcødé Ltd", "O'Brien & Sons"} {
		body, err := json.Marshal(map[string]string{"client_name": name})
		require.NoError(t, err)

		in, err := ParseClientCreate(body)
		require.NoError(t, err)

		out := Client(clientsdomain.Client{ClientName: *in.ClientName}, nil)
		assert.Equal(t, name, out.ClientName)
	}
}
