// Package campaigns implementa as campanhas de e-mail: criação com
// verificação referencial da lista de destinatários, listagem paginada,
// atualização de status e o disparo do envio em background.
package campaigns

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/bizhub-api/infrastructure/mailer"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/pkg/log"
)

type CampaignService interface {
	Create(workspaceID string, req *domain.CreateCampaignRequest) (*domain.Campaign, error)
	GetByID(workspaceID, campaignID string) (*domain.Campaign, error)
	List(workspaceID string, filters *domain.CampaignFilters) (*domain.CampaignPage, error)
	UpdateStatus(workspaceID, campaignID string, status domain.CampaignStatus) (*domain.Campaign, error)
	Send(workspaceID, campaignID string) (*domain.Campaign, error)
}

type Service struct {
	CampaignRepository    repository.CampaignRepository
	ContactRepository     repository.ContactRepository
	ContactListRepository repository.ContactListRepository
	Mailer                mailer.Mailer
}

func NewCampaignService(
	campaignRepository repository.CampaignRepository,
	contactRepository repository.ContactRepository,
	contactListRepository repository.ContactListRepository,
	mailerService mailer.Mailer,
) CampaignService {
	return &Service{
		CampaignRepository:    campaignRepository,
		ContactRepository:     contactRepository,
		ContactListRepository: contactListRepository,
		Mailer:                mailerService,
	}
}

// Create valida os campos obrigatórios e verifica que a lista de
// destinatários existe e pertence ao mesmo workspace antes de persistir.
// Lista inexistente resulta em not found e nada é gravado.
func (s *Service) Create(workspaceID string, req *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "campaign", "", "nome é obrigatório")
	}
	if strings.TrimSpace(req.RecipientListID) == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "campaign", "", "lista de destinatários é obrigatória")
	}

	list, err := s.ContactListRepository.GetByID(workspaceID, req.RecipientListID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact_list", req.RecipientListID, err.Error())
	}
	if list == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "contact_list", req.RecipientListID, "lista de destinatários não encontrada")
	}

	now := time.Now()
	campaign := &domain.Campaign{
		ID:              uuid.New().String(),
		WorkspaceID:     workspaceID,
		Name:            req.Name,
		Subject:         req.Subject,
		Body:            req.Body,
		RecipientListID: req.RecipientListID,
		Status:          domain.CampaignStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.CampaignRepository.Insert(campaign); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", "", err.Error())
	}

	return campaign, nil
}

func (s *Service) GetByID(workspaceID, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.CampaignRepository.GetByID(workspaceID, campaignID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", campaignID, err.Error())
	}
	if campaign == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "campaign", campaignID, "")
	}
	return campaign, nil
}

func (s *Service) List(workspaceID string, filters *domain.CampaignFilters) (*domain.CampaignPage, error) {
	campaigns, err := s.CampaignRepository.List(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", "", err.Error())
	}

	total, err := s.CampaignRepository.Count(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", "", err.Error())
	}

	page := &domain.CampaignPage{
		Campaigns: campaigns,
		Total:     total,
	}
	if filters != nil {
		page.Limit = filters.Limit
		page.Offset = filters.Offset
	}

	return page, nil
}

// UpdateStatus sobrescreve o status com qualquer valor do vocabulário.
// Não há máquina de estados: a única checagem é pertencer ao vocabulário.
func (s *Service) UpdateStatus(workspaceID, campaignID string, status domain.CampaignStatus) (*domain.Campaign, error) {
	if !status.IsValid() {
		return nil, domain.NewResourceError(domain.ErrValidation, "campaign", campaignID, "status desconhecido: "+string(status))
	}

	campaign, err := s.GetByID(workspaceID, campaignID)
	if err != nil {
		return nil, err
	}

	if err := s.CampaignRepository.UpdateStatus(workspaceID, campaignID, status); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", campaignID, err.Error())
	}

	campaign.Status = status
	return campaign, nil
}

// Send marca a campanha como sending e dispara os e-mails em uma goroutine,
// para não segurar a requisição durante o envio. O status final (sent) é
// gravado quando o lote termina; falhas por destinatário são apenas logadas.
func (s *Service) Send(workspaceID, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.GetByID(workspaceID, campaignID)
	if err != nil {
		return nil, err
	}

	recipients, err := s.ContactRepository.ListByListID(workspaceID, campaign.RecipientListID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", campaignID, err.Error())
	}

	if err := s.CampaignRepository.UpdateStatus(workspaceID, campaignID, domain.CampaignStatusSending); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "campaign", campaignID, err.Error())
	}
	campaign.Status = domain.CampaignStatusSending

	go s.deliver(campaign, recipients)

	return campaign, nil
}

func (s *Service) deliver(campaign *domain.Campaign, recipients []*domain.Contact) {
	logger := log.L.WithFields(log.Fields{
		"workspace_id": campaign.WorkspaceID,
		"campaign_id":  campaign.ID,
	})

	delivered := 0
	for _, contact := range recipients {
		result := s.Mailer.Send(&mailer.Message{
			To:      contact.Email,
			Subject: campaign.Subject,
			Body:    campaign.Body,
		})
		if result.Success {
			delivered++
			continue
		}
		logger.WithField("contact_id", contact.ID).
			Warnf("campaigns: falha ao enviar para %s: %s", contact.Email, result.Error)
	}

	if err := s.CampaignRepository.UpdateStatus(campaign.WorkspaceID, campaign.ID, domain.CampaignStatusSent); err != nil {
		logger.WithError(err).Error("campaigns: erro ao marcar campanha como enviada")
		return
	}

	logger.Infof("campaigns: envio concluído, %d de %d destinatários", delivered, len(recipients))
}
