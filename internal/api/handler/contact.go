package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/contacts"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// CreateContact cadastra um contato novo ou reativa um desativado
func CreateContact(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateContactRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		contact, err := service.Create(callerOwnerID(r), &req)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, contact)
	}
}

// ListContacts lista os contatos ativos do workspace com paginação e total
func ListContacts(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		startDate, endDate := parseDateRange(r)

		filters := &domain.ContactFilters{
			Search:    r.URL.Query().Get("search"),
			Tag:       r.URL.Query().Get("tag"),
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

// GetContact retorna um contato do workspace pelo ID
func GetContact(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if contactID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID do contato não fornecido")
			return
		}

		contact, err := service.GetByID(callerOwnerID(r), contactID)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, contact)
	}
}

// DeactivateContact desativa um contato sem remover a linha
func DeactivateContact(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if contactID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID do contato não fornecido")
			return
		}

		if err := service.Deactivate(callerOwnerID(r), contactID); err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, map[string]string{"message": "Contato desativado"})
	}
}

type createContactListRequest struct {
	Name string `json:"name"`
}

// CreateContactList cria uma lista de contatos do workspace
func CreateContactList(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createContactListRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		list, err := service.CreateList(callerOwnerID(r), req.Name)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, list)
	}
}

// ListContactLists lista as listas de contatos do workspace
func ListContactLists(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := service.ListLists(callerOwnerID(r))
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, lists)
	}
}

type addListMemberRequest struct {
	ContactID string `json:"contact_id"`
}

// AddContactToList vincula um contato existente a uma lista
func AddContactToList(service contacts.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if listID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID da lista não fornecido")
			return
		}

		var req addListMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		if req.ContactID == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "ID do contato não fornecido")
			return
		}

		if err := service.AddToList(callerOwnerID(r), listID, req.ContactID); err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, map[string]string{"message": "Contato adicionado à lista"})
	}
}
