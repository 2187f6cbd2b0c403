// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const workspacesTable = "workspaces"

type WorkspaceRepository interface {
	Create(workspace *domain.Workspace) error
	GetByID(workspaceID string) (*domain.Workspace, error)
	GetByOwner(ownerID string) (*domain.Workspace, error)
}

type workspaceRepository struct {
	conn *postgres.Connection
}

func NewWorkspaceRepository(conn *postgres.Connection) WorkspaceRepository {
	return &workspaceRepository{
		conn: conn,
	}
}

func (r *workspaceRepository) Create(workspace *domain.Workspace) error {
	workspacesSQL, workspacesArgs, err := squirrel.
		Insert(workspacesTable).
		Columns("id", "name", "owner_id", "created_at", "updated_at").
		Values(workspace.ID, workspace.Name, workspace.OwnerID, workspace.CreatedAt, workspace.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(workspacesSQL, workspacesArgs...); err != nil {
		return fmt.Errorf("erro ao criar workspace: %w", err)
	}

	return nil
}

func (r *workspaceRepository) GetByID(workspaceID string) (*domain.Workspace, error) {
	return r.getWorkspace(squirrel.Eq{"id": workspaceID})
}

func (r *workspaceRepository) GetByOwner(ownerID string) (*domain.Workspace, error) {
	return r.getWorkspace(squirrel.Eq{"owner_id": ownerID})
}

func (r *workspaceRepository) getWorkspace(whereClause squirrel.Sqlizer) (*domain.Workspace, error) {
	workspacesSQL, workspacesArgs, err := squirrel.
		Select("id", "name", "owner_id", "created_at", "updated_at").
		From(workspacesTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	workspace := &domain.Workspace{}

	err = r.conn.QueryRow(workspacesSQL, workspacesArgs...).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.OwnerID,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return workspace, nil
}
