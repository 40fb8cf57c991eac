package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk-backend/internal/clients/domain"
)

func setupClientRepo(t *testing.T) (*ClientRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewClientRepository(db), mock, db
}

var clientRowColumns = []string{"id", "client_name", "created_by", "username", "created_at", "updated_at"}

func TestClientRepository_Create(t *testing.T) {
	repo, mock, db := setupClientRepo(t)
	defer db.Close()

	t.Run("creates client successfully", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO clients \(client_name, created_by\)`).
			WithArgs("Acme", int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(10), now, now))

		c := &domain.Client{ClientName: "Acme", CreatedByID: 1}
		err := repo.Create(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, int64(10), c.ID)
		assert.False(t, c.CreatedAt.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO clients`).
			WillReturnError(errors.New("connection reset"))

		err := repo.Create(context.Background(), &domain.Client{ClientName: "Acme", CreatedByID: 1})
		assert.ErrorContains(t, err, "insert client")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_Get(t *testing.T) {
	repo, mock, db := setupClientRepo(t)
	defer db.Close()

	t.Run("joins creator username", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT c.id, c.client_name, c.created_by, u.username`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows(clientRowColumns).
				AddRow(int64(10), "Acme", int64(1), "alice", now, now))

		c, err := repo.Get(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.ClientName)
		assert.Equal(t, "alice", c.CreatedByUsername)
		assert.Equal(t, int64(1), c.CreatedByID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps no rows to ErrClientNotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM clients c`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 404)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_List(t *testing.T) {
	repo, mock, db := setupClientRepo(t)
	defer db.Close()

	t.Run("lists without filter", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`FROM clients c`).
			WithArgs("", nil, nil).
			WillReturnRows(sqlmock.NewRows(clientRowColumns).
				AddRow(int64(1), "Acme", int64(1), "alice", now, now).
				AddRow(int64(2), "Globex", int64(2), "bob", now, now))

		clients, err := repo.List(context.Background(), domain.ListFilter{})
		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, "Globex", clients[1].ClientName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("passes search and date bounds", func(t *testing.T) {
		after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`ILIKE`).
			WithArgs("acm", after, nil).
			WillReturnRows(sqlmock.NewRows(clientRowColumns))

		clients, err := repo.List(context.Background(), domain.ListFilter{Search: "acm", CreatedAfter: &after})
		require.NoError(t, err)
		assert.Empty(t, clients)
		assert.NotNil(t, clients)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_UpdateAndDelete(t *testing.T) {
	repo, mock, db := setupClientRepo(t)
	defer db.Close()

	t.Run("update existing client", func(t *testing.T) {
		mock.ExpectExec(`UPDATE clients`).
			WithArgs(int64(10), "Acme Corp").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), 10, "Acme Corp"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing client", func(t *testing.T) {
		mock.ExpectExec(`UPDATE clients`).
			WithArgs(int64(11), "Nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), 11, "Nope")
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("touch bumps updated_at", func(t *testing.T) {
		mock.ExpectExec(`UPDATE clients SET updated_at = now\(\)`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Touch(context.Background(), 10))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete existing client", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 10))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing client", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM clients`).
			WithArgs(int64(12)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 12)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
