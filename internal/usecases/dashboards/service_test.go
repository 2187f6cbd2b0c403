package dashboards

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/metrics"
	"go.uber.org/mock/gomock"
)

func TestOverview(t *testing.T) {
	t.Run("deve usar os valores reais quando as consultas funcionam", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		activityRepo := mocks.NewMockActivityRepository(ctrl)
		metricRepo := mocks.NewMockMetricRepository(ctrl)

		activityRepo.EXPECT().CountBySource("ws-1", "").Return(int64(230), nil)
		metricRepo.EXPECT().AveragePercentage("ws-1").Return(42.5, nil)
		activityRepo.EXPECT().TopCategory("ws-1").Return("social", nil)

		service := NewDashboardService(
			metrics.NewResolverService(activityRepo, metricRepo),
			activityRepo,
		)

		overview := service.Overview("ws-1")

		assert.Equal(t, int64(230), overview.TotalActivities)
		assert.Equal(t, 42.5, overview.EngagementRate)
		assert.Equal(t, "social", overview.TopChannel)
	})

	t.Run("deve responder com valores dentro da faixa quando o banco cai", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		activityRepo := mocks.NewMockActivityRepository(ctrl)
		metricRepo := mocks.NewMockMetricRepository(ctrl)

		dbDown := errors.New("connection refused")
		activityRepo.EXPECT().CountBySource("ws-1", "").Return(int64(0), dbDown)
		metricRepo.EXPECT().AveragePercentage("ws-1").Return(0.0, dbDown)
		activityRepo.EXPECT().TopCategory("ws-1").Return("", dbDown)

		service := NewDashboardService(
			metrics.NewResolverService(activityRepo, metricRepo),
			activityRepo,
		)

		overview := service.Overview("ws-1")

		// Ponto médio de [10, 5000] e de [5, 95]
		assert.Equal(t, int64(2505), overview.TotalActivities)
		assert.Equal(t, 50.0, overview.EngagementRate)
		assert.Equal(t, "email", overview.TopChannel)
	})
}

func TestSupport(t *testing.T) {
	t.Run("deve limitar a contagem de tickets ao teto do painel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		activityRepo := mocks.NewMockActivityRepository(ctrl)
		metricRepo := mocks.NewMockMetricRepository(ctrl)

		activityRepo.EXPECT().CountBySource("ws-1", "ticket").Return(int64(9000), nil)
		metricRepo.EXPECT().AveragePercentage("ws-1").Return(0.0, sql.ErrNoRows)

		service := NewDashboardService(
			metrics.NewResolverService(activityRepo, metricRepo),
			activityRepo,
		)

		dashboard := service.Support("ws-1")

		assert.Equal(t, int64(500), dashboard.TicketActivities)
		assert.Equal(t, 50.0, dashboard.ResolutionRate)
	})
}

func TestLogActivity(t *testing.T) {
	t.Run("deve gravar a entrada no log de atividades", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		activityRepo := mocks.NewMockActivityRepository(ctrl)
		metricRepo := mocks.NewMockMetricRepository(ctrl)

		activityRepo.EXPECT().Insert(gomock.Any()).DoAndReturn(func(entry *domain.ActivityEntry) error {
			assert.Equal(t, "ws-1", entry.WorkspaceID)
			assert.Equal(t, "page_view", entry.Category)
			assert.Equal(t, "campaign", entry.Source)
			assert.False(t, entry.OccurredAt.IsZero())
			return nil
		})

		service := NewDashboardService(
			metrics.NewResolverService(activityRepo, metricRepo),
			activityRepo,
		)

		entry, err := service.LogActivity("ws-1", &domain.LogActivityRequest{
			Category: "page_view",
			Source:   "campaign",
		})

		assert.NoError(t, err)
		assert.Equal(t, "page_view", entry.Category)
	})

	t.Run("deve recusar entrada sem categoria", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		activityRepo := mocks.NewMockActivityRepository(ctrl)
		metricRepo := mocks.NewMockMetricRepository(ctrl)

		service := NewDashboardService(
			metrics.NewResolverService(activityRepo, metricRepo),
			activityRepo,
		)

		_, err := service.LogActivity("ws-1", &domain.LogActivityRequest{Source: "campaign"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
