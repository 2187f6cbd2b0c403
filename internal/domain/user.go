package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           string     `json:"id"`
	WorkspaceID  string     `json:"workspace_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	WorkspaceName string `json:"workspace_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Claims struct {
	UserID        string
	UserName      string
	UserEmail     string
	UserActive    bool
	UserRoleID    int
	WorkspaceID   string
	jwt.RegisteredClaims
}

// OwnerID resolve o identificador usado para escopo de dados. O formato do
// token não é totalmente normalizado na origem, então derivamos aqui de novo
// e caímos no sentinela quando nenhum campo está presente.
func (c *Claims) OwnerID() string {
	if c == nil {
		return DefaultOwnerID
	}
	if c.WorkspaceID != "" {
		return c.WorkspaceID
	}
	if c.UserID != "" {
		return c.UserID
	}
	return DefaultOwnerID
}
