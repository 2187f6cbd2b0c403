package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/internal/usecases/authenticating"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

// Login autentica o usuário e retorna o token JWT
func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			logrus.Error(err)
			writeAuthError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, map[string]string{"token": token})
	}
}

// Register cria o usuário e o workspace inicial dele
func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Register")

		var req domain.RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		user, err := service.Register(&req)
		if err != nil {
			logrus.Error(err)
			writeAuthError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusCreated, user)
	}
}

// GetMe retorna o perfil do usuário autenticado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(r)
		if claims == nil {
			envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Usuário não autenticado")
			return
		}

		user, err := service.GetUserProfile(claims.UserID)
		if err != nil {
			logrus.Error(err)
			writeAuthError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, user)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword altera a senha do usuário autenticado
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := callerClaims(r)
		if claims == nil {
			envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Usuário não autenticado")
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			envelope.WriteErrorMessage(w, envelope.CodeInvalidRequest, "Erro ao decodificar requisição")
			return
		}

		if req.CurrentPassword == "" || req.NewPassword == "" {
			envelope.WriteErrorMessage(w, envelope.CodeMissingData, "Senha atual e nova senha são obrigatórias")
			return
		}

		if err := service.ChangePassword(claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			logrus.Error(err)
			writeAuthError(w, err)
			return
		}

		envelope.WriteSuccess(w, http.StatusOK, map[string]string{"message": "Senha alterada com sucesso"})
	}
}

// writeAuthError traduz um AuthError para o envelope, preservando o código
// que o serviço de autenticação escolheu
func writeAuthError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		envelope.WriteErrorMessage(w, authErr.Code, authErr.Details)
		return
	}

	envelope.WriteError(w, err)
}
