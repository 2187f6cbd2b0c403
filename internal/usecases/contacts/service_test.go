package contacts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Contato novo é inserido com ID e timestamps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockContactRepo.EXPECT().
			GetByEmail(workspaceID, "ana@example.com").
			Return(nil, nil)

		var inserted *domain.Contact
		mockContactRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(c *domain.Contact) error {
				inserted = c
				return nil
			})

		service := NewContactService(mockContactRepo, mockListRepo)

		contact, err := service.Create(workspaceID, &domain.CreateContactRequest{
			Email: "ana@example.com",
			Name:  "Ana",
			Tags:  []string{"vip"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, contact)
		assert.NotEmpty(t, contact.ID)
		assert.True(t, contact.Active)
		assert.Equal(t, workspaceID, contact.WorkspaceID)
		assert.Equal(t, inserted, contact)
		assert.False(t, contact.CreatedAt.IsZero())
	})

	t.Run("Contato ativo duplicado retorna conflito", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockContactRepo.EXPECT().
			GetByEmail(workspaceID, "ana@example.com").
			Return(&domain.Contact{ID: "c-1", Active: true}, nil)

		service := NewContactService(mockContactRepo, mockListRepo)

		contact, err := service.Create(workspaceID, &domain.CreateContactRequest{Email: "ana@example.com"})

		assert.Nil(t, contact)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Contato desativado é reativado preservando o ID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		existing := &domain.Contact{
			ID:          "c-1",
			WorkspaceID: workspaceID,
			Email:       "ana@example.com",
			Name:        "Ana",
			Active:      false,
			CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}

		mockContactRepo.EXPECT().
			GetByEmail(workspaceID, "ana@example.com").
			Return(existing, nil)

		mockContactRepo.EXPECT().
			Update(gomock.Any()).
			DoAndReturn(func(c *domain.Contact) error {
				assert.Equal(t, "c-1", c.ID)
				assert.True(t, c.Active)
				return nil
			})

		service := NewContactService(mockContactRepo, mockListRepo)

		contact, err := service.Create(workspaceID, &domain.CreateContactRequest{
			Email: "ana@example.com",
			Name:  "Ana Maria",
		})

		assert.NoError(t, err)
		assert.Equal(t, "c-1", contact.ID)
		assert.True(t, contact.Active)
		assert.Equal(t, "Ana Maria", contact.Name)
	})

	t.Run("Email vazio retorna erro de validação sem consultar o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		service := NewContactService(mockContactRepo, mockListRepo)

		contact, err := service.Create(workspaceID, &domain.CreateContactRequest{Email: "   "})

		assert.Nil(t, contact)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Conflito do índice único na corrida de inserção é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockContactRepo.EXPECT().
			GetByEmail(workspaceID, "ana@example.com").
			Return(nil, nil)

		mockContactRepo.EXPECT().
			Insert(gomock.Any()).
			Return(domain.NewResourceError(domain.ErrConflict, "contact", "ana@example.com", "email já cadastrado no workspace"))

		service := NewContactService(mockContactRepo, mockListRepo)

		contact, err := service.Create(workspaceID, &domain.CreateContactRequest{Email: "ana@example.com"})

		assert.Nil(t, contact)
		assert.True(t, domain.IsConflict(err))
	})
}

func TestService_List(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Listagem retorna página e total da segunda query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		filters := &domain.ContactFilters{Limit: 2, Offset: 0}
		contacts := []*domain.Contact{{ID: "c-1"}, {ID: "c-2"}}

		mockContactRepo.EXPECT().List(workspaceID, filters).Return(contacts, nil)
		mockContactRepo.EXPECT().Count(workspaceID, filters).Return(int64(7), nil)

		service := NewContactService(mockContactRepo, mockListRepo)

		page, err := service.List(workspaceID, filters)

		assert.NoError(t, err)
		assert.Len(t, page.Contacts, 2)
		assert.Equal(t, int64(7), page.Total)
		assert.Equal(t, uint64(2), page.Limit)
	})

	t.Run("Erro do banco vira erro de armazenamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockContactRepo.EXPECT().
			List(workspaceID, gomock.Any()).
			Return(nil, errors.New("connection refused"))

		service := NewContactService(mockContactRepo, mockListRepo)

		page, err := service.List(workspaceID, nil)

		assert.Nil(t, page)
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	})
}

func TestService_Deactivate(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Desativação preserva a linha e desliga o flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockContactRepo.EXPECT().
			GetByID(workspaceID, "c-1").
			Return(&domain.Contact{ID: "c-1", WorkspaceID: workspaceID, Active: true}, nil)

		mockContactRepo.EXPECT().
			Update(gomock.Any()).
			DoAndReturn(func(c *domain.Contact) error {
				assert.False(t, c.Active)
				return nil
			})

		service := NewContactService(mockContactRepo, mockListRepo)

		assert.NoError(t, service.Deactivate(workspaceID, "c-1"))
	})

	t.Run("Contato inexistente retorna not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockContactRepo.EXPECT().
			GetByID(workspaceID, "c-404").
			Return(nil, nil)

		service := NewContactService(mockContactRepo, mockListRepo)

		err := service.Deactivate(workspaceID, "c-404")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestService_AddToList(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Lista inexistente retorna not found sem vincular", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockListRepo.EXPECT().
			GetByID(workspaceID, "l-404").
			Return(nil, nil)

		service := NewContactService(mockContactRepo, mockListRepo)

		err := service.AddToList(workspaceID, "l-404", "c-1")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Lista e contato válidos vinculam o membro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockListRepo.EXPECT().
			GetByID(workspaceID, "l-1").
			Return(&domain.ContactList{ID: "l-1"}, nil)

		mockContactRepo.EXPECT().
			GetByID(workspaceID, "c-1").
			Return(&domain.Contact{ID: "c-1"}, nil)

		mockListRepo.EXPECT().
			AddMember("l-1", "c-1").
			Return(nil)

		service := NewContactService(mockContactRepo, mockListRepo)

		assert.NoError(t, service.AddToList(workspaceID, "l-1", "c-1"))
	})
}
