package envelope

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

func TestWriteSuccess(t *testing.T) {
	t.Run("deve envolver o payload em success/data", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		WriteSuccess(recorder, http.StatusCreated, map[string]string{"id": "c-1"})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"success":true,"data":{"id":"c-1"}}`, recorder.Body.String())
	})

	t.Run("deve omitir data quando o payload é nulo", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		WriteSuccess(recorder, http.StatusOK, nil)

		assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "não encontrado",
			err:            domain.NewResourceError(domain.ErrNotFound, "contact", "c-1", ""),
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeNotFound,
		},
		{
			name:           "conflito",
			err:            domain.NewResourceError(domain.ErrConflict, "contact", "c-1", "email já cadastrado no workspace"),
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeConflict,
		},
		{
			name:           "validação",
			err:            domain.NewResourceError(domain.ErrValidation, "ticket", "", "subject é obrigatório"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeInvalidRequest,
		},
		{
			name:           "não autorizado",
			err:            domain.ErrUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   CodeUnauthorized,
		},
		{
			name:           "banco indisponível",
			err:            domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", "", "connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeStorageUnavailable,
		},
		{
			name:           "erro desconhecido cai no código genérico",
			err:            errors.New("algo inesperado"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			WriteError(recorder, tt.err)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			var resp Response
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestWriteErrorMessage(t *testing.T) {
	t.Run("deve usar o status mapeado para o código", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		WriteErrorMessage(recorder, CodeForbidden, "Você não tem permissão para acessar este recurso")

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.JSONEq(t,
			`{"success":false,"error":"Você não tem permissão para acessar este recurso","code":"AUTH_002"}`,
			recorder.Body.String())
	})

	t.Run("código desconhecido cai em erro interno", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		WriteErrorMessage(recorder, "XYZ_999", "mensagem qualquer")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
