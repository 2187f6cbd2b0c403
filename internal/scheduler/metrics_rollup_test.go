package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/bizhub-api/internal/config"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newRollupService(activityRepo *mocks.MockActivityRepository, metricRepo *mocks.MockMetricRepository) *MetricsRollupService {
	cfg := &config.Config{
		MetricsRollupSync: config.MetricsRollupSync{
			CronSchedule:  "0 3 * * *",
			LookbackHours: 24,
			Enabled:       false,
		},
	}
	return NewMetricsRollupService(activityRepo, metricRepo, cfg)
}

func TestMetricsRollupService_RunRollup(t *testing.T) {
	t.Run("Cada linha agregada vira uma métrica de contagem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

		mockActivityRepo.EXPECT().
			RollupCounts(gomock.Any()).
			DoAndReturn(func(since time.Time) ([]*domain.ActivityRollup, error) {
				// A janela padrão cobre as últimas 24 horas
				assert.WithinDuration(t, time.Now().Add(-24*time.Hour), since, time.Minute)
				return []*domain.ActivityRollup{
					{WorkspaceID: "ws-1", Source: "user_activities", Count: 42},
					{WorkspaceID: "ws-2", Source: "api_calls", Count: 7},
				}, nil
			})

		var metrics []*domain.Metric
		mockMetricRepo.EXPECT().
			Insert(gomock.Any()).
			Times(2).
			DoAndReturn(func(m *domain.Metric) error {
				metrics = append(metrics, m)
				return nil
			})

		service := newRollupService(mockActivityRepo, mockMetricRepo)

		assert.NoError(t, service.RunRollup())
		assert.Len(t, metrics, 2)
		assert.Equal(t, "activity_count_user_activities", metrics[0].MetricName)
		assert.Equal(t, float64(42), metrics[0].MetricValue)
		assert.Equal(t, "count", metrics[0].MetricType)
	})

	t.Run("Falha em uma métrica não interrompe as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

		mockActivityRepo.EXPECT().
			RollupCounts(gomock.Any()).
			Return([]*domain.ActivityRollup{
				{WorkspaceID: "ws-1", Source: "a", Count: 1},
				{WorkspaceID: "ws-2", Source: "b", Count: 2},
			}, nil)

		gomock.InOrder(
			mockMetricRepo.EXPECT().Insert(gomock.Any()).Return(errors.New("deadlock")),
			mockMetricRepo.EXPECT().Insert(gomock.Any()).Return(nil),
		)

		service := newRollupService(mockActivityRepo, mockMetricRepo)

		assert.NoError(t, service.RunRollup())
	})

	t.Run("Erro na agregação é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

		mockActivityRepo.EXPECT().
			RollupCounts(gomock.Any()).
			Return(nil, errors.New("banco indisponível"))

		service := newRollupService(mockActivityRepo, mockMetricRepo)

		assert.Error(t, service.RunRollup())
	})

	t.Run("Período sem atividades não grava nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

		mockActivityRepo.EXPECT().
			RollupCounts(gomock.Any()).
			Return([]*domain.ActivityRollup{}, nil)

		service := newRollupService(mockActivityRepo, mockMetricRepo)

		assert.NoError(t, service.RunRollup())
	})
}

func TestMetricsRollupService_GetStatus(t *testing.T) {
	t.Run("Responde enquanto um rollup está em andamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

		release := make(chan struct{})
		mockActivityRepo.EXPECT().
			RollupCounts(gomock.Any()).
			DoAndReturn(func(time.Time) ([]*domain.ActivityRollup, error) {
				<-release
				return nil, nil
			})

		service := newRollupService(mockActivityRepo, mockMetricRepo)

		done := make(chan struct{})
		go func() {
			defer close(done)
			assert.NoError(t, service.RunRollup())
		}()

		// O status deve refletir o início do rollup sem bloquear na trava
		assert.Eventually(t, func() bool {
			status := service.GetStatus()
			startedAt, ok := status["last_sync_started_at"].(time.Time)
			return ok && !startedAt.IsZero()
		}, time.Second, 10*time.Millisecond)

		close(release)
		<-done

		status := service.GetStatus()
		completedAt, ok := status["last_sync_completed_at"].(time.Time)
		assert.True(t, ok)
		assert.False(t, completedAt.IsZero())
	})
}
