package domain

import "time"

type Contact struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Tags        []string  `json:"tags"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateContactRequest struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
}

// ContactFilters são os filtros aceitos pela listagem de contatos
type ContactFilters struct {
	Search    string
	Tag       string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     uint64
	Offset    uint64
}

type ContactList struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactPage é o resultado paginado da listagem, com o total calculado
// por uma segunda query sem paginação
type ContactPage struct {
	Contacts []*Contact `json:"contacts"`
	Total    int64      `json:"total"`
	Limit    uint64     `json:"limit"`
	Offset   uint64     `json:"offset"`
}
