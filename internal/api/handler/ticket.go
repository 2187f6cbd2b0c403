package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/ticketing"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// CreateTicket abre um ticket de suporte com referência legível gerada
func CreateTicket(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateTicketRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		ticket, err := service.Create(callerOwnerID(r), &req)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, ticket)
	}
}

// ListTickets lista os tickets do workspace com paginação e total
func ListTickets(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		startDate, endDate := parseDateRange(r)

		filters := &domain.TicketFilters{
			Status:    domain.TicketStatus(r.URL.Query().Get("status")),
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

// GetTicket retorna um ticket do workspace pelo ID
func GetTicket(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if ticketID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID do ticket não fornecido")
			return
		}

		ticket, err := service.GetByID(callerOwnerID(r), ticketID)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, ticket)
	}
}

type updateTicketStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTicketStatus atualiza o status do ticket para qualquer valor do
// vocabulário aceito
func UpdateTicketStatus(service ticketing.TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if ticketID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID do ticket não fornecido")
			return
		}

		var req updateTicketStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		ticket, err := service.UpdateStatus(callerOwnerID(r), ticketID, domain.TicketStatus(req.Status))
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, ticket)
	}
}
