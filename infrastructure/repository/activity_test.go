package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestActivityRepository_CountBySource(t *testing.T) {
	t.Run("deve filtrar pela origem quando informada", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewActivityRepository(conn)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM activity_log").
			WithArgs("ws-1", "campaign").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountBySource("ws-1", "campaign")

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deve contar tudo quando a origem é vazia", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewActivityRepository(conn)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM activity_log").
			WithArgs("ws-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(19))

		count, err := repo.CountBySource("ws-1", "")

		assert.NoError(t, err)
		assert.Equal(t, int64(19), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_TopCategory(t *testing.T) {
	t.Run("deve retornar sql.ErrNoRows quando o log está vazio", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewActivityRepository(conn)

		mock.ExpectQuery("SELECT category FROM activity_log").
			WithArgs("ws-1").
			WillReturnRows(sqlmock.NewRows([]string{"category"}))

		_, err := repo.TopCategory("ws-1")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deve retornar a categoria mais frequente", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewActivityRepository(conn)

		mock.ExpectQuery("SELECT category FROM activity_log").
			WithArgs("ws-1").
			WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("page_view"))

		category, err := repo.TopCategory("ws-1")

		assert.NoError(t, err)
		assert.Equal(t, "page_view", category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_RollupCounts(t *testing.T) {
	t.Run("deve agregar por workspace e origem", func(t *testing.T) {
		conn, mock := newTestConnection(t)
		repo := NewActivityRepository(conn)

		since := time.Now().Add(-24 * time.Hour)
		mock.ExpectQuery("SELECT workspace_id, source, COUNT\\(\\*\\) FROM activity_log").
			WithArgs(since).
			WillReturnRows(sqlmock.NewRows([]string{"workspace_id", "source", "count"}).
				AddRow("ws-1", "campaign", 12).
				AddRow("ws-2", "ticket", 3))

		rollups, err := repo.RollupCounts(since)

		assert.NoError(t, err)
		assert.Len(t, rollups, 2)
		assert.Equal(t, "ws-1", rollups[0].WorkspaceID)
		assert.Equal(t, int64(12), rollups[0].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
