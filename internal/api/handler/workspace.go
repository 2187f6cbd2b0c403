package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/workspaces"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// CreateWorkspace cria o workspace do usuário autenticado
func CreateWorkspace(service workspaces.WorkspaceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(r)
		if claims == nil {
			envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Usuário não autenticado")
			return
		}

		var req domain.CreateWorkspaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		req.OwnerID = claims.UserID

		workspace, err := service.Create(&req)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, workspace)
	}
}

// GetMyWorkspace retorna o workspace do usuário autenticado
func GetMyWorkspace(service workspaces.WorkspaceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(r)
		if claims == nil {
			envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Usuário não autenticado")
			return
		}

		workspace, err := service.GetByOwner(claims.UserID)
		if err != nil {
			logrus.Error(err)
			envelope.WriteError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, workspace)
	}
}
