package domain

import "time"

const MetricTypePercentage = "percentage"

// Metric é um registro de métrica append-only vinculado a um workspace
type Metric struct {
	ID          int64     `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	MetricName  string    `json:"metric_name"`
	MetricType  string    `json:"metric_type"`
	MetricValue float64   `json:"metric_value"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// ActivityRollup é uma linha agregada do log de atividades, produzida pelo
// job de rollup e gravada na tabela de métricas
type ActivityRollup struct {
	WorkspaceID string
	Source      string
	Count       int64
}

// ActivityEntry é uma linha do log de atividades, base das contagens e da
// categoria mais frequente exibidas nos dashboards
type ActivityEntry struct {
	ID          int64     `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Category    string    `json:"category"`
	Source      string    `json:"source"`
	OccurredAt  time.Time `json:"occurred_at"`
}
