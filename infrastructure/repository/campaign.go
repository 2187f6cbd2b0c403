package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	Insert(campaign *domain.Campaign) error
	GetByID(workspaceID, campaignID string) (*domain.Campaign, error)
	List(workspaceID string, filters *domain.CampaignFilters) ([]*domain.Campaign, error)
	Count(workspaceID string, filters *domain.CampaignFilters) (int64, error)
	UpdateStatus(workspaceID, campaignID string, status domain.CampaignStatus) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Insert(campaign *domain.Campaign) error {
	campaignsSQL, campaignsArgs, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "workspace_id", "name", "subject", "body", "recipient_list_id", "status", "created_at", "updated_at").
		Values(
			campaign.ID,
			campaign.WorkspaceID,
			campaign.Name,
			campaign.Subject,
			campaign.Body,
			campaign.RecipientListID,
			campaign.Status,
			campaign.CreatedAt,
			campaign.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(campaignsSQL, campaignsArgs...); err != nil {
		return fmt.Errorf("erro ao inserir campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(workspaceID, campaignID string) (*domain.Campaign, error) {
	campaignsSQL, campaignsArgs, err := squirrel.
		Select("id", "workspace_id", "name", "subject", "body", "recipient_list_id", "status", "created_at", "updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(campaignsSQL, campaignsArgs...)

	campaign, err := scanCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return campaign, nil
}

func (r *campaignRepository) List(workspaceID string, filters *domain.CampaignFilters) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select("id", "workspace_id", "name", "subject", "body", "recipient_list_id", "status", "created_at", "updated_at").
		From(campaignsTable).
		Where(campaignWhere(workspaceID, filters)).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil && filters.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filters.Limit).Offset(filters.Offset)
	}

	campaignsSQL, campaignsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(campaignsSQL, campaignsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

func (r *campaignRepository) Count(workspaceID string, filters *domain.CampaignFilters) (int64, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(campaignsTable).
		Where(campaignWhere(workspaceID, filters)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar campanhas: %w", err)
	}

	return total, nil
}

// UpdateStatus sobrescreve o status sem validar transição; o vocabulário já
// foi checado na camada de serviço
func (r *campaignRepository) UpdateStatus(workspaceID, campaignID string, status domain.CampaignStatus) error {
	campaignsSQL, campaignsArgs, err := squirrel.
		Update(campaignsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaignID, "workspace_id": workspaceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(campaignsSQL, campaignsArgs...); err != nil {
		return fmt.Errorf("erro ao atualizar status da campanha: %w", err)
	}

	return nil
}

func campaignWhere(workspaceID string, filters *domain.CampaignFilters) squirrel.Sqlizer {
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
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"subject": pattern},
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

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	if err := row.Scan(
		&campaign.ID,
		&campaign.WorkspaceID,
		&campaign.Name,
		&campaign.Subject,
		&campaign.Body,
		&campaign.RecipientListID,
		&campaign.Status,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return campaign, nil
}
