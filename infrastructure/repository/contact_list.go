package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const (
	contactListsTable       = "contact_lists"
	contactListMembersTable = "contact_list_members"
)

type ContactListRepository interface {
	Create(list *domain.ContactList) error
	GetByID(workspaceID, listID string) (*domain.ContactList, error)
	ListByWorkspace(workspaceID string) ([]*domain.ContactList, error)
	AddMember(listID, contactID string) error
}

type contactListRepository struct {
	conn *postgres.Connection
}

func NewContactListRepository(conn *postgres.Connection) ContactListRepository {
	return &contactListRepository{
		conn: conn,
	}
}

func (r *contactListRepository) Create(list *domain.ContactList) error {
	listsSQL, listsArgs, err := squirrel.
		Insert(contactListsTable).
		Columns("id", "workspace_id", "name", "created_at").
		Values(list.ID, list.WorkspaceID, list.Name, list.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(listsSQL, listsArgs...); err != nil {
		return fmt.Errorf("erro ao criar lista de contatos: %w", err)
	}

	return nil
}

// GetByID retorna nil quando a lista não existe ou pertence a outro workspace.
// A verificação referencial da criação de campanhas depende desse contrato.
func (r *contactListRepository) GetByID(workspaceID, listID string) (*domain.ContactList, error) {
	listsSQL, listsArgs, err := squirrel.
		Select("id", "workspace_id", "name", "created_at").
		From(contactListsTable).
		Where(squirrel.Eq{"id": listID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	list := &domain.ContactList{}

	err = r.conn.QueryRow(listsSQL, listsArgs...).Scan(
		&list.ID,
		&list.WorkspaceID,
		&list.Name,
		&list.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return list, nil
}

func (r *contactListRepository) ListByWorkspace(workspaceID string) ([]*domain.ContactList, error) {
	listsSQL, listsArgs, err := squirrel.
		Select("id", "workspace_id", "name", "created_at").
		From(contactListsTable).
		Where(squirrel.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(listsSQL, listsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar listas de contatos: %w", err)
	}
	defer rows.Close()

	lists := make([]*domain.ContactList, 0)

	for rows.Next() {
		list := &domain.ContactList{}
		if err := rows.Scan(&list.ID, &list.WorkspaceID, &list.Name, &list.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lists, nil
}

func (r *contactListRepository) AddMember(listID, contactID string) error {
	membersSQL, membersArgs, err := squirrel.
		Insert(contactListMembersTable).
		Columns("list_id", "contact_id").
		Values(listID, contactID).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(membersSQL, membersArgs...); err != nil {
		return fmt.Errorf("erro ao adicionar contato à lista: %w", err)
	}

	return nil
}
