package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	projectsdomain "github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

type fakeClientStore struct {
	clients map[int64]*domain.Client
	nextID  int64
	touched []int64
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: map[int64]*domain.Client{}, nextID: 1}
}

func (f *fakeClientStore) Create(_ context.Context, c *domain.Client) error {
	c.ID = f.nextID
	f.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	f.clients[c.ID] = &stored
	return nil
}

func (f *fakeClientStore) Get(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeClientStore) List(_ context.Context, _ domain.ListFilter) ([]domain.Client, error) {
	out := []domain.Client{}
	for id := int64(1); id < f.nextID; id++ {
		if c, ok := f.clients[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClientStore) Update(_ context.Context, id int64, name string) error {
	c, ok := f.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.ClientName = name
	return nil
}

func (f *fakeClientStore) Touch(_ context.Context, id int64) error {
	if _, ok := f.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeClientStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(f.clients, id)
	return nil
}

type fakeProjectLister struct {
	byClient map[int64][]projectsdomain.Project
	err      error
	calls    [][]int64
}

func (f *fakeProjectLister) ListByClientIDs(_ context.Context, ids []int64) (map[int64][]projectsdomain.Project, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := map[int64][]projectsdomain.Project{}
	for _, id := range ids {
		if ps, ok := f.byClient[id]; ok {
			out[id] = ps
		}
	}
	return out, nil
}

var alice = &usersdomain.User{ID: 1, Username: "alice"}

func TestClientService_Create(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientService(store, &fakeProjectLister{})

	got, err := svc.Create(context.Background(), alice, "Acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Client.ID)
	assert.Equal(t, "alice", got.Client.CreatedByUsername)
	assert.Equal(t, int64(1), store.clients[1].CreatedByID)
	assert.NotNil(t, got.Projects)
	assert.Empty(t, got.Projects)
}

func TestClientService_GetAndList(t *testing.T) {
	store := newFakeClientStore()
	projects := &fakeProjectLister{byClient: map[int64][]projectsdomain.Project{
		1: {{ID: 10, ProjectName: "Website", ClientID: 1}},
	}}
	svc := NewClientService(store, projects)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, "Acme")
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, "Globex")
	require.NoError(t, err)

	t.Run("get embeds projects", func(t *testing.T) {
		got, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got.Projects, 1)
		assert.Equal(t, "Website", got.Projects[0].ProjectName)
	})

	t.Run("exists", func(t *testing.T) {
		assert.NoError(t, svc.Exists(ctx, 2))
		assert.ErrorIs(t, svc.Exists(ctx, 99), domain.ErrClientNotFound)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.Get(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})

	t.Run("list loads projects in one batch", func(t *testing.T) {
		projects.calls = nil
		got, err := svc.List(ctx, domain.ListFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Len(t, got[0].Projects, 1)
		assert.NotNil(t, got[1].Projects)
		assert.Empty(t, got[1].Projects)
		assert.Equal(t, [][]int64{{1, 2}}, projects.calls)
	})

	t.Run("project lookup failure", func(t *testing.T) {
		broken := NewClientService(store, &fakeProjectLister{err: errors.New("timeout")})
		_, err := broken.List(ctx, domain.ListFilter{})
		assert.EqualError(t, err, "timeout")
	})
}

func TestClientService_ListEmpty(t *testing.T) {
	projects := &fakeProjectLister{}
	svc := NewClientService(newFakeClientStore(), projects)

	got, err := svc.List(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, projects.calls)
}

func TestClientService_Update(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientService(store, &fakeProjectLister{})
	ctx := context.Background()
	_, err := svc.Create(ctx, alice, "Acme")
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		name := "Acme Corp"
		got, err := svc.Update(ctx, 1, &name)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.Client.ClientName)
		assert.Equal(t, "alice", got.Client.CreatedByUsername)
	})

	t.Run("empty patch touches", func(t *testing.T) {
		got, err := svc.Update(ctx, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.Client.ClientName)
		assert.Equal(t, []int64{1}, store.touched)
	})

	t.Run("missing client", func(t *testing.T) {
		name := "x"
		_, err := svc.Update(ctx, 42, &name)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}

func TestClientService_Delete(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientService(store, &fakeProjectLister{})
	ctx := context.Background()
	_, err := svc.Create(ctx, alice, "Acme")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Empty(t, store.clients)
	assert.ErrorIs(t, svc.Delete(ctx, 1), domain.ErrClientNotFound)
}
