package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const escrowTable = "escrow_transactions"

type EscrowRepository interface {
	Insert(tx *domain.EscrowTransaction) error
	GetByID(workspaceID, txID string) (*domain.EscrowTransaction, error)
	List(workspaceID string, filters *domain.EscrowFilters) ([]*domain.EscrowTransaction, error)
	Count(workspaceID string, filters *domain.EscrowFilters) (int64, error)
	UpdateStatus(workspaceID, txID string, status domain.EscrowStatus) error
}

type escrowRepository struct {
	conn *postgres.Connection
}

func NewEscrowRepository(conn *postgres.Connection) EscrowRepository {
	return &escrowRepository{
		conn: conn,
	}
}

func (r *escrowRepository) Insert(tx *domain.EscrowTransaction) error {
	escrowSQL, escrowArgs, err := squirrel.
		Insert(escrowTable).
		Columns("id", "reference", "workspace_id", "title", "amount_cents", "currency", "status", "created_at", "updated_at").
		Values(
			tx.ID,
			tx.Reference,
			tx.WorkspaceID,
			tx.Title,
			tx.AmountCents,
			tx.Currency,
			tx.Status,
			tx.CreatedAt,
			tx.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(escrowSQL, escrowArgs...); err != nil {
		return fmt.Errorf("erro ao inserir transação de escrow: %w", err)
	}

	return nil
}

func (r *escrowRepository) GetByID(workspaceID, txID string) (*domain.EscrowTransaction, error) {
	escrowSQL, escrowArgs, err := squirrel.
		Select("id", "reference", "workspace_id", "title", "amount_cents", "currency", "status", "created_at", "updated_at").
		From(escrowTable).
		Where(squirrel.Eq{"id": txID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(escrowSQL, escrowArgs...)

	tx, err := scanEscrow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return tx, nil
}

func (r *escrowRepository) List(workspaceID string, filters *domain.EscrowFilters) ([]*domain.EscrowTransaction, error) {
	queryBuilder := squirrel.
		Select("id", "reference", "workspace_id", "title", "amount_cents", "currency", "status", "created_at", "updated_at").
		From(escrowTable).
		Where(escrowWhere(workspaceID, filters)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil && filters.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filters.Limit).Offset(filters.Offset)
	}

	escrowSQL, escrowArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(escrowSQL, escrowArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar transações de escrow: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.EscrowTransaction, 0)

	for rows.Next() {
		tx, err := scanEscrow(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *escrowRepository) Count(workspaceID string, filters *domain.EscrowFilters) (int64, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(escrowTable).
		Where(escrowWhere(workspaceID, filters)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar transações de escrow: %w", err)
	}

	return total, nil
}

func (r *escrowRepository) UpdateStatus(workspaceID, txID string, status domain.EscrowStatus) error {
	escrowSQL, escrowArgs, err := squirrel.
		Update(escrowTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": txID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(escrowSQL, escrowArgs...); err != nil {
		return fmt.Errorf("erro ao atualizar status da transação: %w", err)
	}

	return nil
}

func escrowWhere(workspaceID string, filters *domain.EscrowFilters) squirrel.Sqlizer {
	where := squirrel.And{
		squirrel.Eq{"workspace_id": workspaceID},
	}

	if filters == nil {
		return where
	}

	if filters.Status != "" {
		where = append(where, squirrel.Eq{"status": filters.Status})
	}

	if filters.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filters.StartDate})
	}

	if filters.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filters.EndDate})
	}

	return where
}

func scanEscrow(row rowScanner) (*domain.EscrowTransaction, error) {
	tx := &domain.EscrowTransaction{}

	if err := row.Scan(
		&tx.ID,
		&tx.Reference,
		&tx.WorkspaceID,
		&tx.Title,
		&tx.AmountCents,
		&tx.Currency,
		&tx.Status,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return tx, nil
}
