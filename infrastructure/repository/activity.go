package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const activityLogTable = "activity_log"

type ActivityRepository interface {
	Insert(entry *domain.ActivityEntry) error
	// CountBySource conta as atividades do workspace, opcionalmente filtradas
	// pela origem (source vazio conta tudo)
	CountBySource(workspaceID, source string) (int64, error)
	// TopCategory retorna a categoria mais frequente do log de atividades
	TopCategory(workspaceID string) (string, error)
	// RollupCounts agrega contagens por workspace e origem desde o instante
	// informado, para o job de rollup de métricas
	RollupCounts(since time.Time) ([]*domain.ActivityRollup, error)
}

type activityRepository struct {
	conn *postgres.Connection
}

func NewActivityRepository(conn *postgres.Connection) ActivityRepository {
	return &activityRepository{
		conn: conn,
	}
}

func (r *activityRepository) Insert(entry *domain.ActivityEntry) error {
	activitySQL, activityArgs, err := squirrel.
		Insert(activityLogTable).
		Columns("workspace_id", "category", "source", "occurred_at").
		Values(entry.WorkspaceID, entry.Category, entry.Source, entry.OccurredAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(activitySQL, activityArgs...); err != nil {
		return fmt.Errorf("erro ao registrar atividade: %w", err)
	}

	return nil
}

func (r *activityRepository) CountBySource(workspaceID, source string) (int64, error) {
	where := squirrel.And{squirrel.Eq{"workspace_id": workspaceID}}
	if source != "" {
		where = append(where, squirrel.Eq{"source": source})
	}

	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(activityLogTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar atividades: %w", err)
	}

	return count, nil
}

func (r *activityRepository) TopCategory(workspaceID string) (string, error) {
	topSQL, topArgs, err := squirrel.
		Select("category").
		From(activityLogTable).
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		GroupBy("category").
		OrderBy("COUNT(*) DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var category string
	if err := r.conn.QueryRow(topSQL, topArgs...).Scan(&category); err != nil {
		if err == sql.ErrNoRows {
			return "", sql.ErrNoRows
		}
		return "", fmt.Errorf("erro ao buscar categoria mais frequente: %w", err)
	}

	return category, nil
}

func (r *activityRepository) RollupCounts(since time.Time) ([]*domain.ActivityRollup, error) {
	rollupSQL, rollupArgs, err := squirrel.
		Select("workspace_id", "source", "COUNT(*)").
		From(activityLogTable).
		Where(squirrel.GtOrEq{"occurred_at": since}).
		GroupBy("workspace_id", "source").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(rollupSQL, rollupArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar atividades: %w", err)
	}
	defer rows.Close()

	rollups := make([]*domain.ActivityRollup, 0)

	for rows.Next() {
		rollup := &domain.ActivityRollup{}
		if err := rows.Scan(&rollup.WorkspaceID, &rollup.Source, &rollup.Count); err != nil {
			return nil, err
		}
		rollups = append(rollups, rollup)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rollups, nil
}
