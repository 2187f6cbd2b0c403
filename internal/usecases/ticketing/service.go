// Package ticketing implementa os chamados de suporte do workspace
package ticketing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/pkg/utils"
)

// referencePrefix compõe a referência curta exibida ao cliente (TCK-xxxxxx)
const referencePrefix = "TCK-"

type TicketService interface {
	Create(workspaceID string, req *domain.CreateTicketRequest) (*domain.Ticket, error)
	GetByID(workspaceID, ticketID string) (*domain.Ticket, error)
	List(workspaceID string, filters *domain.TicketFilters) (*domain.TicketPage, error)
	UpdateStatus(workspaceID, ticketID string, status domain.TicketStatus) (*domain.Ticket, error)
}

type Service struct {
	TicketRepository repository.TicketRepository
}

func NewTicketService(ticketRepository repository.TicketRepository) TicketService {
	return &Service{
		TicketRepository: ticketRepository,
	}
}

func (s *Service) Create(workspaceID string, req *domain.CreateTicketRequest) (*domain.Ticket, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "ticket", "", "assunto é obrigatório")
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.TicketPriorityNormal
	}
	if !priority.IsValid() {
		return nil, domain.NewResourceError(domain.ErrValidation, "ticket", "", "prioridade desconhecida: "+string(priority))
	}

	shortID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:          uuid.New().String(),
		Reference:   referencePrefix + shortID,
		WorkspaceID: workspaceID,
		Subject:     req.Subject,
		Body:        req.Body,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.TicketRepository.Insert(ticket); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "ticket", "", err.Error())
	}

	return ticket, nil
}

func (s *Service) GetByID(workspaceID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.TicketRepository.GetByID(workspaceID, ticketID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "ticket", ticketID, err.Error())
	}
	if ticket == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "ticket", ticketID, "")
	}
	return ticket, nil
}

func (s *Service) List(workspaceID string, filters *domain.TicketFilters) (*domain.TicketPage, error) {
	tickets, err := s.TicketRepository.List(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "ticket", "", err.Error())
	}

	total, err := s.TicketRepository.Count(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "ticket", "", err.Error())
	}

	page := &domain.TicketPage{
		Tickets: tickets,
		Total:   total,
	}
	if filters != nil {
		page.Limit = filters.Limit
		page.Offset = filters.Offset
	}

	return page, nil
}

func (s *Service) UpdateStatus(workspaceID, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.IsValid() {
		return nil, domain.NewResourceError(domain.ErrValidation, "ticket", ticketID, "status desconhecido: "+string(status))
	}

	ticket, err := s.GetByID(workspaceID, ticketID)
	if err != nil {
		return nil, err
	}

	if err := s.TicketRepository.UpdateStatus(workspaceID, ticketID, status); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "ticket", ticketID, err.Error())
	}

	ticket.Status = status
	return ticket, nil
}
