package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/scheduler"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMetricsRollup = "metrics-rollup"
	CronJobTypeAll           = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	MetricsRollupService *scheduler.MetricsRollupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "Tipo de cron job não especificado")
			return
		}

		switch cronType {
		case CronJobTypeMetricsRollup, CronJobTypeAll:
			if services.MetricsRollupService == nil {
				envelope.WriteErrorMessage(w, envelope.CodeInternalServer, "Serviço de rollup de métricas não disponível")
				return
			}
			services.MetricsRollupService.TriggerManualSync()

		default:
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Tipo de cron job inválido. Valores aceitos: metrics-rollup, all")
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		envelope.WriteSuccess(w, http.StatusOK, map[string]any{
			"metrics-rollup": services.MetricsRollupService.GetStatus(),
		})
	}
}
