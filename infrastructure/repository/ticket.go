package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const ticketsTable = "tickets"

type TicketRepository interface {
	Insert(ticket *domain.Ticket) error
	GetByID(workspaceID, ticketID string) (*domain.Ticket, error)
	List(workspaceID string, filters *domain.TicketFilters) ([]*domain.Ticket, error)
	Count(workspaceID string, filters *domain.TicketFilters) (int64, error)
	UpdateStatus(workspaceID, ticketID string, status domain.TicketStatus) error
}

type ticketRepository struct {
	conn *postgres.Connection
}

func NewTicketRepository(conn *postgres.Connection) TicketRepository {
	return &ticketRepository{
		conn: conn,
	}
}

func (r *ticketRepository) Insert(ticket *domain.Ticket) error {
	ticketsSQL, ticketsArgs, err := squirrel.
		Insert(ticketsTable).
		Columns("id", "reference", "workspace_id", "subject", "body", "priority", "status", "created_at", "updated_at").
		Values(
			ticket.ID,
			ticket.Reference,
			ticket.WorkspaceID,
			ticket.Subject,
			ticket.Body,
			ticket.Priority,
			ticket.Status,
			ticket.CreatedAt,
			ticket.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ticketsSQL, ticketsArgs...); err != nil {
		return fmt.Errorf("erro ao inserir ticket: %w", err)
	}

	return nil
}

func (r *ticketRepository) GetByID(workspaceID, ticketID string) (*domain.Ticket, error) {
	ticketsSQL, ticketsArgs, err := squirrel.
		Select("id", "reference", "workspace_id", "subject", "body", "priority", "status", "created_at", "updated_at").
		From(ticketsTable).
		Where(squirrel.Eq{"id": ticketID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(ticketsSQL, ticketsArgs...)

	ticket, err := scanTicket(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return ticket, nil
}

func (r *ticketRepository) List(workspaceID string, filters *domain.TicketFilters) ([]*domain.Ticket, error) {
	queryBuilder := squirrel.
		Select("id", "reference", "workspace_id", "subject", "body", "priority", "status", "created_at", "updated_at").
		From(ticketsTable).
		Where(ticketWhere(workspaceID, filters)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil && filters.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filters.Limit).Offset(filters.Offset)
	}

	ticketsSQL, ticketsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ticketsSQL, ticketsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *ticketRepository) Count(workspaceID string, filters *domain.TicketFilters) (int64, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(ticketsTable).
		Where(ticketWhere(workspaceID, filters)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar tickets: %w", err)
	}

	return total, nil
}

func (r *ticketRepository) UpdateStatus(workspaceID, ticketID string, status domain.TicketStatus) error {
	ticketsSQL, ticketsArgs, err := squirrel.
		Update(ticketsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ticketID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ticketsSQL, ticketsArgs...); err != nil {
		return fmt.Errorf("erro ao atualizar status do ticket: %w", err)
	}

	return nil
}

func ticketWhere(workspaceID string, filters *domain.TicketFilters) squirrel.Sqlizer {
	where := squirrel.And{
		squirrel.Eq{"workspace_id": workspaceID},
	}

	if filters == nil {
		return where
	}

	if filters.Status != "" {
		where = append(where, squirrel.Eq{"status": filters.Status})
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"subject": pattern},
			squirrel.ILike{"body": pattern},
		})
	}

	if filters.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filters.StartDate})
	}

	if filters.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filters.EndDate})
	}

	return where
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}

	if err := row.Scan(
		&ticket.ID,
		&ticket.Reference,
		&ticket.WorkspaceID,
		&ticket.Subject,
		&ticket.Body,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return ticket, nil
}
