package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/escrow"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// CreateEscrowTransaction abre uma transação de escrow em status pending
func CreateEscrowTransaction(service escrow.EscrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateEscrowRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		tx, err := service.Create(callerOwnerID(r), &req)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, tx)
	}
}

// ListEscrowTransactions lista as transações do workspace com paginação e total
func ListEscrowTransactions(service escrow.EscrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		startDate, endDate := parseDateRange(r)

		filters := &domain.EscrowFilters{
			Status:    domain.EscrowStatus(r.URL.Query().Get("status")),
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

// GetEscrowTransaction retorna uma transação do workspace pelo ID
func GetEscrowTransaction(service escrow.EscrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if txID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID da transação não fornecido")
			return
		}

		tx, err := service.GetByID(callerOwnerID(r), txID)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, tx)
	}
}

type updateEscrowStatusRequest struct {
	Status string `json:"status"`
}

// UpdateEscrowStatus atualiza o status da transação para qualquer valor do
// vocabulário aceito
func UpdateEscrowStatus(service escrow.EscrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if txID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID da transação não fornecido")
			return
		}

		var req updateEscrowStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		tx, err := service.UpdateStatus(callerOwnerID(r), txID, domain.EscrowStatus(req.Status))
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, tx)
	}
}
