// Package scheduler contém os serviços de agendamento de tarefas recorrentes
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/config"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

type MetricsRollupConfig struct {
	CronSchedule  string
	LookbackHours int
	Enabled       bool
}

// MetricsRollupService agrega o log de atividades por workspace e origem e
// grava o resultado na tabela de métricas, que alimenta os dashboards
type MetricsRollupService struct {
	scheduler           *gocron.Scheduler
	activityRepo        repository.ActivityRepository
	metricRepo          repository.MetricRepository
	config              MetricsRollupConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewMetricsRollupService(
	activityRepo repository.ActivityRepository,
	metricRepo repository.MetricRepository,
	cfg *config.Config,
) *MetricsRollupService {
	rollupConfig := MetricsRollupConfig{
		CronSchedule:  cfg.MetricsRollupSync.CronSchedule,  // Default: 3h da manhã todos os dias
		LookbackHours: cfg.MetricsRollupSync.LookbackHours, // Default: 24 horas
		Enabled:       cfg.MetricsRollupSync.Enabled,       // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rollupConfig.CronSchedule,
	}).Info("Configuração do agendador de rollup de métricas carregada")

	return &MetricsRollupService{
		scheduler:    scheduler,
		activityRepo: activityRepo,
		metricRepo:   metricRepo,
		config:       rollupConfig,
	}
}

func (s *MetricsRollupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de rollup de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de rollup de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunRollup(); err != nil {
			logrus.WithError(err).Error("Erro no rollup de métricas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar rollup de métricas: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de rollup de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *MetricsRollupService) RunRollup() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Rollup de métricas já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando rollup de métricas")

	lookback := time.Duration(s.config.LookbackHours) * time.Hour
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	since := time.Now().Add(-lookback)

	rollups, err := s.activityRepo.RollupCounts(since)
	if err != nil {
		logrus.WithError(err).Error("Erro ao agregar o log de atividades")
		return err
	}

	if len(rollups) == 0 {
		logrus.Info("Nenhuma atividade no período, rollup de métricas sem dados")
		return nil
	}

	recordedAt := time.Now()
	saved := 0
	for _, rollup := range rollups {
		metric := &domain.Metric{
			WorkspaceID: rollup.WorkspaceID,
			MetricName:  "activity_count_" + rollup.Source,
			MetricType:  "count",
			MetricValue: float64(rollup.Count),
			RecordedAt:  recordedAt,
		}

		if err := s.metricRepo.Insert(metric); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"workspace_id": rollup.WorkspaceID,
				"source":       rollup.Source,
			}).Error("Erro ao gravar métrica de rollup")
			continue
		}
		saved++
	}

	logrus.WithFields(logrus.Fields{
		"rollups": len(rollups),
		"saved":   saved,
	}).Info("Rollup de métricas concluído")

	return nil
}

// TriggerManualSync inicia manualmente um rollup de métricas
func (s *MetricsRollupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Rollup de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando rollup manual de métricas")
	go func() {
		if err := s.RunRollup(); err != nil {
			logrus.WithError(err).Error("Erro no rollup manual de métricas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *MetricsRollupService) GetStatus() map[string]any {
	// RunRollup grava os timestamps sob o mesmo mutex
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
