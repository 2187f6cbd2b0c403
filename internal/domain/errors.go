package domain

import (
	"errors"
	"fmt"
)

// Tipos de erro internos que toda a camada de API converte em resposta HTTP.
// Os handlers nunca inspecionam strings de erro, apenas esses sentinelas.
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrConflict           = errors.New("recurso duplicado")
	ErrValidation         = errors.New("dados obrigatórios ausentes ou inválidos")
	ErrStorageUnavailable = errors.New("erro ao acessar o armazenamento")
	ErrUnauthorized       = errors.New("não autorizado")
)

// ResourceError é um erro com contexto adicional sobre o recurso envolvido
type ResourceError struct {
	Err      error  // Erro base (um dos sentinelas acima)
	Resource string // Tipo do recurso (contact, campaign, ticket...)
	ID       string // Identificador envolvido, quando aplicável
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ResourceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError cria um erro de recurso com contexto
func NewResourceError(baseErr error, resource, id, details string) *ResourceError {
	return &ResourceError{
		Err:      baseErr,
		Resource: resource,
		ID:       id,
		Details:  details,
	}
}

// IsNotFound verifica se o erro representa um recurso inexistente
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica se o erro representa um recurso duplicado
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
