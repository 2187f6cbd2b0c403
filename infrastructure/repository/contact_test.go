package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

func newTestConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgres.Connection{DB: db}, mock
}

var contactColumns = []string{"id", "workspace_id", "email", "name", "tags", "active", "created_at", "updated_at"}

func TestContactRepository_Insert(t *testing.T) {
	t.Run("deve inserir o contato com todas as colunas", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewContactRepository(conn)

		mock.ExpectExec("INSERT INTO contacts").
			WithArgs("c-1", "ws-1", "ana@example.com", "Ana", pq.Array([]string{"vip"}), true,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Insert(&domain.Contact{
			ID:          "c-1",
			WorkspaceID: "ws-1",
			Email:       "ana@example.com",
			Name:        "Ana",
			Tags:        []string{"vip"},
			Active:      true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deve traduzir violação de índice único em conflito", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewContactRepository(conn)

		mock.ExpectExec("INSERT INTO contacts").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Insert(&domain.Contact{
			ID:          "c-1",
			WorkspaceID: "ws-1",
			Email:       "ana@example.com",
		})

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContactRepository_GetByEmail(t *testing.T) {
	t.Run("deve retornar nil sem erro quando não há linha", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewContactRepository(conn)

		mock.ExpectQuery("SELECT (.+) FROM contacts").
			WithArgs("ws-1", "ninguem@example.com").
			WillReturnRows(sqlmock.NewRows(contactColumns))

		contact, err := repo.GetByEmail("ws-1", "ninguem@example.com")

		assert.NoError(t, err)
		assert.Nil(t, contact)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deve encontrar o contato mesmo desativado", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewContactRepository(conn)

		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM contacts").
			WithArgs("ws-1", "ana@example.com").
			WillReturnRows(sqlmock.NewRows(contactColumns).
				AddRow("c-1", "ws-1", "ana@example.com", "Ana", []byte("{vip,beta}"), false, now, now))

		contact, err := repo.GetByEmail("ws-1", "ana@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "c-1", contact.ID)
		assert.False(t, contact.Active)
		assert.Equal(t, []string{"vip", "beta"}, contact.Tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContactRepository_Count(t *testing.T) {
	t.Run("deve contar apenas os contatos ativos do workspace", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewContactRepository(conn)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
			WithArgs("ws-1", true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		total, err := repo.Count("ws-1", nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
