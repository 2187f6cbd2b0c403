package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/dashboards"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// GetDashboardOverview retorna o painel geral do workspace. Nunca responde
// erro: os valores degradam para o ponto médio das faixas quando as
// consultas falham.
func GetDashboardOverview(service dashboards.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteSuccess(w, http.StatusOK, service.Overview(callerOwnerID(r)))
	}
}

// GetMarketingDashboard retorna o painel de marketing do workspace
func GetMarketingDashboard(service dashboards.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteSuccess(w, http.StatusOK, service.Marketing(callerOwnerID(r)))
	}
}

// GetSupportDashboard retorna o painel de suporte do workspace
func GetSupportDashboard(service dashboards.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteSuccess(w, http.StatusOK, service.Support(callerOwnerID(r)))
	}
}

// GetEscrowDashboard retorna o painel de escrow do workspace
func GetEscrowDashboard(service dashboards.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteSuccess(w, http.StatusOK, service.Escrow(callerOwnerID(r)))
	}
}

// LogActivity registra uma entrada no log de atividades do workspace
func LogActivity(service dashboards.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LogActivityRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		entry, err := service.LogActivity(callerOwnerID(r), &req)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, entry)
	}
}
