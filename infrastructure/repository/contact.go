package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const contactsTable = "contacts"

// uniqueViolation é o código do postgres para violação de índice único
const uniqueViolation = "23505"

type ContactRepository interface {
	Insert(contact *domain.Contact) error
	Update(contact *domain.Contact) error
	GetByID(workspaceID, contactID string) (*domain.Contact, error)
	GetByEmail(workspaceID, email string) (*domain.Contact, error)
	List(workspaceID string, filters *domain.ContactFilters) ([]*domain.Contact, error)
	Count(workspaceID string, filters *domain.ContactFilters) (int64, error)
	ListByListID(workspaceID, listID string) ([]*domain.Contact, error)
}

type contactRepository struct {
	conn *postgres.Connection
}

func NewContactRepository(conn *postgres.Connection) ContactRepository {
	return &contactRepository{
		conn: conn,
	}
}

func (r *contactRepository) Insert(contact *domain.Contact) error {
	contactsSQL, contactsArgs, err := squirrel.
		Insert(contactsTable).
		Columns("id", "workspace_id", "email", "name", "tags", "active", "created_at", "updated_at").
		Values(
			contact.ID,
			contact.WorkspaceID,
			contact.Email,
			contact.Name,
			pq.Array(contact.Tags),
			contact.Active,
			contact.CreatedAt,
			contact.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(contactsSQL, contactsArgs...); err != nil {
		// O índice único parcial em (workspace_id, lower(email)) WHERE active
		// fecha a corrida de check-then-insert entre requisições concorrentes
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.NewResourceError(domain.ErrConflict, "contact", contact.Email, "email já cadastrado no workspace")
		}
		return fmt.Errorf("erro ao inserir contato: %w", err)
	}

	return nil
}

func (r *contactRepository) Update(contact *domain.Contact) error {
	contactsSQL, contactsArgs, err := squirrel.
		Update(contactsTable).
		Set("name", contact.Name).
		Set("tags", pq.Array(contact.Tags)).
		Set("active", contact.Active).
		Set("updated_at", contact.UpdatedAt).
		Where(squirrel.Eq{"id": contact.ID, "workspace_id": contact.WorkspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(contactsSQL, contactsArgs...); err != nil {
		return fmt.Errorf("erro ao atualizar contato: %w", err)
	}

	return nil
}

func (r *contactRepository) GetByID(workspaceID, contactID string) (*domain.Contact, error) {
	return r.getContact(squirrel.Eq{"id": contactID, "workspace_id": workspaceID})
}

// GetByEmail busca um contato pelo par (workspace, email), ativo ou não.
// Contatos desativados também interessam: o fluxo de criação os reativa.
func (r *contactRepository) GetByEmail(workspaceID, email string) (*domain.Contact, error) {
	return r.getContact(squirrel.And{
		squirrel.Eq{"workspace_id": workspaceID},
		squirrel.Expr("lower(email) = lower(?)", email),
	})
}

func (r *contactRepository) getContact(whereClause squirrel.Sqlizer) (*domain.Contact, error) {
	contactsSQL, contactsArgs, err := squirrel.
		Select("id", "workspace_id", "email", "name", "tags", "active", "created_at", "updated_at").
		From(contactsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(contactsSQL, contactsArgs...)

	contact, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) List(workspaceID string, filters *domain.ContactFilters) ([]*domain.Contact, error) {
	queryBuilder := squirrel.
		Select("id", "workspace_id", "email", "name", "tags", "active", "created_at", "updated_at").
		From(contactsTable).
		Where(contactWhere(workspaceID, filters)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil && filters.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filters.Limit).Offset(filters.Offset)
	}

	contactsSQL, contactsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(contactsSQL, contactsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contatos: %w", err)
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return contacts, nil
}

// Count executa a segunda query, sem paginação, que alimenta o campo total
func (r *contactRepository) Count(workspaceID string, filters *domain.ContactFilters) (int64, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(contactsTable).
		Where(contactWhere(workspaceID, filters)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar contatos: %w", err)
	}

	return total, nil
}

func (r *contactRepository) ListByListID(workspaceID, listID string) ([]*domain.Contact, error) {
	contactsSQL, contactsArgs, err := squirrel.
		Select("c.id", "c.workspace_id", "c.email", "c.name", "c.tags", "c.active", "c.created_at", "c.updated_at").
		From("contacts c").
		Join("contact_list_members m ON m.contact_id = c.id").
		Where(squirrel.Eq{"m.list_id": listID, "c.workspace_id": workspaceID, "c.active": true}).
		OrderBy("c.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(contactsSQL, contactsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contatos da lista: %w", err)
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contacts, nil
}

// contactWhere monta o filtro de igualdade/intervalo/busca textual da listagem
func contactWhere(workspaceID string, filters *domain.ContactFilters) squirrel.Sqlizer {
	where := squirrel.And{
		squirrel.Eq{"workspace_id": workspaceID},
		squirrel.Eq{"active": true},
	}

	if filters == nil {
		return where
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"name": pattern},
		})
	}

	if filters.Tag != "" {
		where = append(where, squirrel.Expr("? = ANY(tags)", filters.Tag))
	}

	if filters.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filters.StartDate})
	}

	if filters.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filters.EndDate})
	}

	return where
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	contact := &domain.Contact{}

	if err := row.Scan(
		&contact.ID,
		&contact.WorkspaceID,
		&contact.Email,
		&contact.Name,
		pq.Array(&contact.Tags),
		&contact.Active,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return contact, nil
}
