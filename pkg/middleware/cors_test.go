package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCors(t *testing.T) {
	allowedOrigins := []string{"http://localhost:3000", "https://app.bizhub.com.br"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("origem configurada recebe os cabeçalhos de CORS", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		request.Header.Set("Origin", "https://app.bizhub.com.br")

		Cors(allowedOrigins)(next).ServeHTTP(recorder, request)

		assert.Equal(t, "https://app.bizhub.com.br", recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("origem desconhecida não recebe os cabeçalhos", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/contacts", nil)
		request.Header.Set("Origin", "https://outro-dominio.example.com")

		Cors(allowedOrigins)(next).ServeHTTP(recorder, request)

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight OPTIONS responde sem chegar ao handler", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodOptions, "/v1/contacts", nil)
		request.Header.Set("Origin", "http://localhost:3000")

		called := false
		Cors(allowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.False(t, called)
	})
}
