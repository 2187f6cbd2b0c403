package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/campaigns"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// CreateCampaign cria uma campanha em rascunho vinculada a uma lista de
// destinatários existente
func CreateCampaign(service campaigns.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateCampaignRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		campaign, err := service.Create(callerOwnerID(r), &req)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, campaign)
	}
}

// ListCampaigns lista as campanhas do workspace com paginação e total
func ListCampaigns(service campaigns.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		startDate, endDate := parseDateRange(r)

		filters := &domain.CampaignFilters{
			Status:    domain.CampaignStatus(r.URL.Query().Get("status")),
			Search:    r.URL.Query().Get("search"),
			StartDate: startDate,
			EndDate:   endDate,
			Limit:     limit,
			Offset:    offset,
		}

		page, err := service.List(callerOwnerID(r), filters)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, page)
	}
}

// GetCampaign retorna uma campanha do workspace pelo ID
func GetCampaign(service campaigns.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID da campanha não fornecido")
			return
		}

		campaign, err := service.GetByID(callerOwnerID(r), campaignID)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, campaign)
	}
}

type updateCampaignStatusRequest struct {
	Status string `json:"status"`
}

// UpdateCampaignStatus atualiza o status da campanha para qualquer valor do
// vocabulário aceito
func UpdateCampaignStatus(service campaigns.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID da campanha não fornecido")
			return
		}

		var req updateCampaignStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		campaign, err := service.UpdateStatus(callerOwnerID(r), campaignID, domain.CampaignStatus(req.Status))
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, campaign)
	}
}

// SendCampaign dispara o envio da campanha para a lista de destinatários.
// A entrega acontece em background; a resposta volta com status sending.
func SendCampaign(service campaigns.CampaignService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID da campanha não fornecido")
			return
		}

		campaign, err := service.Send(callerOwnerID(r), campaignID)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusAccepted, campaign)
	}
}
