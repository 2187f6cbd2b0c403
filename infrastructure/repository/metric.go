package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const metricsTable = "metrics"

type MetricRepository interface {
	Insert(metric *domain.Metric) error
	// AveragePercentage calcula a média de metric_value restrita às métricas
	// do tipo percentage do workspace
	AveragePercentage(workspaceID string) (float64, error)
	ListByName(workspaceID, metricName string, limit uint64) ([]*domain.Metric, error)
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

func (r *metricRepository) Insert(metric *domain.Metric) error {
	metricsSQL, metricsArgs, err := squirrel.
		Insert(metricsTable).
		Columns("workspace_id", "metric_name", "metric_type", "metric_value", "recorded_at").
		Values(metric.WorkspaceID, metric.MetricName, metric.MetricType, metric.MetricValue, metric.RecordedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(metricsSQL, metricsArgs...); err != nil {
		return fmt.Errorf("erro ao inserir métrica: %w", err)
	}

	return nil
}

func (r *metricRepository) AveragePercentage(workspaceID string) (float64, error) {
	avgSQL, avgArgs, err := squirrel.
		Select("AVG(metric_value)").
		From(metricsTable).
		Where(squirrel.Eq{"workspace_id": workspaceID, "metric_type": domain.MetricTypePercentage}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	// AVG sobre zero linhas retorna NULL, que tratamos como erro de dado
	// ausente para acionar o fallback do resolvedor
	var avg sql.NullFloat64
	if err := r.conn.QueryRow(avgSQL, avgArgs...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("erro ao calcular média de métricas: %w", err)
	}

	if !avg.Valid {
		return 0, sql.ErrNoRows
	}

	return avg.Float64, nil
}

func (r *metricRepository) ListByName(workspaceID, metricName string, limit uint64) ([]*domain.Metric, error) {
	metricsSQL, metricsArgs, err := squirrel.
		Select("id", "workspace_id", "metric_name", "metric_type", "metric_value", "recorded_at").
		From(metricsTable).
		Where(squirrel.Eq{"workspace_id": workspaceID, "metric_name": metricName}).
		OrderBy("recorded_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(metricsSQL, metricsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar métricas: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.Metric, 0)

	for rows.Next() {
		metric := &domain.Metric{}
		if err := rows.Scan(
			&metric.ID,
			&metric.WorkspaceID,
			&metric.MetricName,
			&metric.MetricType,
			&metric.MetricValue,
			&metric.RecordedAt,
		); err != nil {
			return nil, err
		}
		metrics = append(metrics, metric)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metrics, nil
}
