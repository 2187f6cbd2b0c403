package domain

import "time"

// DefaultOwnerID é o valor sentinela usado quando o token não carrega
// nenhum identificador de workspace
const DefaultOwnerID = "default-user"

type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateWorkspaceRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"-"`
}
