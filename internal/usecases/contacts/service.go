// Package contacts implementa o cadastro e a listagem de contatos do
// workspace, incluindo a reativação de contatos desativados por soft delete.
package contacts

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/pkg/log"
)

type ContactService interface {
	Create(workspaceID string, req *domain.CreateContactRequest) (*domain.Contact, error)
	GetByID(workspaceID, contactID string) (*domain.Contact, error)
	List(workspaceID string, filters *domain.ContactFilters) (*domain.ContactPage, error)
	Deactivate(workspaceID, contactID string) error
	CreateList(workspaceID, name string) (*domain.ContactList, error)
	ListLists(workspaceID string) ([]*domain.ContactList, error)
	AddToList(workspaceID, listID, contactID string) error
}

type Service struct {
	ContactRepository     repository.ContactRepository
	ContactListRepository repository.ContactListRepository
}

func NewContactService(
	contactRepository repository.ContactRepository,
	contactListRepository repository.ContactListRepository,
) ContactService {
	return &Service{
		ContactRepository:     contactRepository,
		ContactListRepository: contactListRepository,
	}
}

// Create cadastra um contato novo ou reativa um contato desativado com o
// mesmo e-mail. Um contato ativo duplicado resulta em erro de conflito.
func (s *Service) Create(workspaceID string, req *domain.CreateContactRequest) (*domain.Contact, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "contact", "", "email é obrigatório")
	}

	existing, err := s.ContactRepository.GetByEmail(workspaceID, email)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact", "", err.Error())
	}

	if existing != nil {
		if existing.Active {
			return nil, domain.NewResourceError(domain.ErrConflict, "contact", existing.ID, "email já cadastrado no workspace")
		}
		return s.reactivate(existing, req)
	}

	now := time.Now()
	contact := &domain.Contact{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Email:       email,
		Name:        req.Name,
		Tags:        req.Tags,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ContactRepository.Insert(contact); err != nil {
		// O índice único pode devolver conflito quando duas criações
		// concorrentes passam pela verificação acima ao mesmo tempo
		if domain.IsConflict(err) {
			return nil, err
		}
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact", "", err.Error())
	}

	return contact, nil
}

// reactivate religa um contato desativado preservando o ID original e
// sobrescrevendo nome e tags com os dados da nova requisição
func (s *Service) reactivate(existing *domain.Contact, req *domain.CreateContactRequest) (*domain.Contact, error) {
	existing.Active = true
	existing.UpdatedAt = time.Now()

	if req.Name != "" {
		existing.Name = req.Name
	}
	if len(req.Tags) > 0 {
		existing.Tags = req.Tags
	}

	if err := s.ContactRepository.Update(existing); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact", existing.ID, err.Error())
	}

	log.L.WithFields(log.Fields{
		"workspace_id": existing.WorkspaceID,
		"contact_id":   existing.ID,
	}).Info("contacts: contato desativado foi reativado")

	return existing, nil
}

func (s *Service) GetByID(workspaceID, contactID string) (*domain.Contact, error) {
	contact, err := s.ContactRepository.GetByID(workspaceID, contactID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact", contactID, err.Error())
	}
	if contact == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "contact", contactID, "")
	}
	return contact, nil
}

// List retorna a página pedida mais o total, calculado por uma segunda
// query sem paginação
func (s *Service) List(workspaceID string, filters *domain.ContactFilters) (*domain.ContactPage, error) {
	contacts, err := s.ContactRepository.List(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact", "", err.Error())
	}

	total, err := s.ContactRepository.Count(workspaceID, filters)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact", "", err.Error())
	}

	page := &domain.ContactPage{
		Contacts: contacts,
		Total:    total,
	}
	if filters != nil {
		page.Limit = filters.Limit
		page.Offset = filters.Offset
	}

	return page, nil
}

// Deactivate marca o contato como inativo sem remover a linha. O ID
// permanece reservado para uma eventual reativação.
func (s *Service) Deactivate(workspaceID, contactID string) error {
	contact, err := s.GetByID(workspaceID, contactID)
	if err != nil {
		return err
	}

	contact.Active = false
	contact.UpdatedAt = time.Now()

	if err := s.ContactRepository.Update(contact); err != nil {
		return domain.NewResourceError(domain.ErrStorageUnavailable, "contact", contactID, err.Error())
	}

	return nil
}

func (s *Service) CreateList(workspaceID, name string) (*domain.ContactList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "contact_list", "", "nome é obrigatório")
	}

	list := &domain.ContactList{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		CreatedAt:   time.Now(),
	}

	if err := s.ContactListRepository.Create(list); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact_list", "", err.Error())
	}

	return list, nil
}

func (s *Service) ListLists(workspaceID string) ([]*domain.ContactList, error) {
	lists, err := s.ContactListRepository.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "contact_list", "", err.Error())
	}
	return lists, nil
}

// AddToList vincula um contato existente a uma lista do mesmo workspace
func (s *Service) AddToList(workspaceID, listID, contactID string) error {
	list, err := s.ContactListRepository.GetByID(workspaceID, listID)
	if err != nil {
		return domain.NewResourceError(domain.ErrStorageUnavailable, "contact_list", listID, err.Error())
	}
	if list == nil {
		return domain.NewResourceError(domain.ErrNotFound, "contact_list", listID, "")
	}

	if _, err := s.GetByID(workspaceID, contactID); err != nil {
		return err
	}

	if err := s.ContactListRepository.AddMember(listID, contactID); err != nil {
		return domain.NewResourceError(domain.ErrStorageUnavailable, "contact_list", listID, err.Error())
	}

	return nil
}
