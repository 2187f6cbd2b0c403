// Package escrow implementa as transações de custódia entre as partes de
// uma negociação do workspace
package escrow

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/pkg/utils"
)

const referencePrefix = "ESC-"

const defaultCurrency = "BRL"

type EscrowService interface {
	Create(workspaceID string, req *domain.CreateEscrowRequest) (*domain.EscrowTransaction, error)
	GetByID(workspaceID, txID string) (*domain.EscrowTransaction, error)
	List(workspaceID string, filters *domain.EscrowFilters) (*domain.EscrowPage, error)
	UpdateStatus(workspaceID, txID string, status domain.EscrowStatus) (*domain.EscrowTransaction, error)
}

type Service struct {
	EscrowRepository repository.EscrowRepository
}

func NewEscrowService(escrowRepository repository.EscrowRepository) EscrowService {
	return &Service{
		EscrowRepository: escrowRepository,
	}
}

func (s *Service) Create(workspaceID string, req *domain.CreateEscrowRequest) (*domain.EscrowTransaction, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "escrow", "", "título é obrigatório")
	}
	if req.AmountCents <= 0 {
		return nil, domain.NewResourceError(domain.ErrValidation, "escrow", "", "valor deve ser positivo")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	shortID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &domain.EscrowTransaction{
		ID:          uuid.New().String(),
		Reference:   referencePrefix + shortID,
		WorkspaceID: workspaceID,
		Title:       req.Title,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Status:      domain.EscrowStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.EscrowRepository.Insert(tx); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "escrow", "", err.Error())
	}

	return tx, nil
}

func (s *Service) GetByID(workspaceID, txID string) (*domain.EscrowTransaction, error) {
	tx, err := s.EscrowRepository.GetByID(workspaceID, txID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "escrow", txID, err.Error())
	}
	if tx == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "escrow", txID, "")
	}
	return tx, nil
}

func (s *Service) List(workspaceID string, filters *domain.EscrowFilters) (*domain.EscrowPage, error) {
	transactions, err := s.EscrowRepository.List(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "escrow", "", err.Error())
	}

	total, err := s.EscrowRepository.Count(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "escrow", "", err.Error())
	}

	page := &domain.EscrowPage{
		Transactions: transactions,
		Total:        total,
	}
	if filters != nil {
		page.Limit = filters.Limit
		page.Offset = filters.Offset
	}

	return page, nil
}

// UpdateStatus sobrescreve o status depois de checar o vocabulário.
// Transições arbitrárias são permitidas, inclusive sair de completed.
func (s *Service) UpdateStatus(workspaceID, txID string, status domain.EscrowStatus) (*domain.EscrowTransaction, error) {
	if !status.IsValid() {
		return nil, domain.NewResourceError(domain.ErrValidation, "escrow", txID, "status desconhecido: "+string(status))
	}

	tx, err := s.GetByID(workspaceID, txID)
	if err != nil {
		return nil, err
	}

	if err := s.EscrowRepository.UpdateStatus(workspaceID, txID, status); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "escrow", txID, err.Error())
	}

	tx.Status = status
	return tx, nil
}
