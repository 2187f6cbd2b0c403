// Package envelope padroniza o corpo de todas as respostas HTTP da API.
// Sucesso: {"success":true,"data":...}
// Erro:    {"success":false,"error":"...","code":"..."}
package envelope

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos para o cliente
const (
	CodeUnauthorized       = "AUTH_001" // Não autenticado ou token inválido
	CodeForbidden          = "AUTH_002" // Privilégios insuficientes
	CodeInvalidRequest     = "VAL_001"  // Requisição inválida
	CodeMissingData        = "VAL_002"  // Dados obrigatórios ausentes
	CodeNotFound           = "RES_001"  // Recurso não encontrado
	CodeConflict           = "RES_002"  // Recurso duplicado
	CodeInternalServer     = "SRV_001"  // Erro interno do servidor
	CodeStorageUnavailable = "SRV_002"  // Erro de operação de banco de dados
)

// Response é o envelope uniforme de toda resposta da API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// WriteSuccess escreve um envelope de sucesso com o status informado
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Success: true, Data: data})
}

// WriteError converte um erro interno no envelope de erro correspondente.
// Apenas a mensagem do erro é exposta, nunca stack traces.
func WriteError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	write(w, status, Response{Success: false, Error: err.Error(), Code: code})
}

// WriteErrorMessage escreve um envelope de erro com código e mensagem explícitos
func WriteErrorMessage(w http.ResponseWriter, code string, message string) {
	write(w, statusFor(code), Response{Success: false, Error: message, Code: code})
}

// classify mapeia os sentinelas de domain para status HTTP e código de API
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusInternalServerError, CodeStorageUnavailable
	default:
		return http.StatusInternalServerError, CodeInternalServer
	}
}

var httpStatusMap = map[string]int{
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeInvalidRequest:     http.StatusBadRequest,
	CodeMissingData:        http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeInternalServer:     http.StatusInternalServerError,
	CodeStorageUnavailable: http.StatusInternalServerError,
}

func statusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Error("envelope: erro ao serializar resposta")
	}
}
