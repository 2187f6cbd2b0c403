// Package workspaces implementa a criação e consulta de workspaces
package workspaces

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/domain"
)

type WorkspaceService interface {
	Create(req *domain.CreateWorkspaceRequest) (*domain.Workspace, error)
	GetByID(workspaceID string) (*domain.Workspace, error)
	GetByOwner(ownerID string) (*domain.Workspace, error)
}

type Service struct {
	WorkspaceRepository repository.WorkspaceRepository
}

func NewWorkspaceService(workspaceRepository repository.WorkspaceRepository) WorkspaceService {
	return &Service{
		WorkspaceRepository: workspaceRepository,
	}
}

func (s *Service) Create(req *domain.CreateWorkspaceRequest) (*domain.Workspace, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewResourceError(domain.ErrValidation, "workspace", "", "nome é obrigatório")
	}

	existing, err := s.WorkspaceRepository.GetByOwner(req.OwnerID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "workspace", "", err.Error())
	}
	if existing != nil {
		return nil, domain.NewResourceError(domain.ErrConflict, "workspace", existing.ID, "o usuário já possui um workspace")
	}

	now := time.Now()
	workspace := &domain.Workspace{
		ID:        uuid.New().String(),
		Name:      req.Name,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.WorkspaceRepository.Create(workspace); err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "workspace", "", err.Error())
	}

	return workspace, nil
}

func (s *Service) GetByID(workspaceID string) (*domain.Workspace, error) {
	workspace, err := s.WorkspaceRepository.GetByID(workspaceID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "workspace", workspaceID, err.Error())
	}
	if workspace == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "workspace", workspaceID, "")
	}
	return workspace, nil
}

func (s *Service) GetByOwner(ownerID string) (*domain.Workspace, error) {
	workspace, err := s.WorkspaceRepository.GetByOwner(ownerID)
	if err != nil {
		return nil, domain.NewResourceError(domain.ErrStorageUnavailable, "workspace", "", err.Error())
	}
	if workspace == nil {
		return nil, domain.NewResourceError(domain.ErrNotFound, "workspace", "", "workspace não encontrado para o usuário")
	}
	return workspace, nil
}
