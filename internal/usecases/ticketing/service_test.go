package ticketing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Chamado novo abre com referência TCK e prioridade padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTicketRepo := mocks.NewMockTicketRepository(ctrl)

		mockTicketRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(tk *domain.Ticket) error {
				assert.True(t, strings.HasPrefix(tk.Reference, "TCK-"))
				assert.Len(t, tk.Reference, len("TCK-")+6)
				assert.Equal(t, domain.TicketStatusOpen, tk.Status)
				assert.Equal(t, domain.TicketPriorityNormal, tk.Priority)
				return nil
			})

		service := NewTicketService(mockTicketRepo)

		ticket, err := service.Create(workspaceID, &domain.CreateTicketRequest{
			Subject: "Não consigo acessar o painel",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	})

	t.Run("Assunto vazio retorna erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
		service := NewTicketService(mockTicketRepo)

		ticket, err := service.Create(workspaceID, &domain.CreateTicketRequest{Body: "..."})

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Prioridade fora do vocabulário retorna erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTicketRepo := mocks.NewMockTicketRepository(ctrl)
		service := NewTicketService(mockTicketRepo)

		ticket, err := service.Create(workspaceID, &domain.CreateTicketRequest{
			Subject:  "Dúvida",
			Priority: domain.TicketPriority("blocker"),
		})

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Status do vocabulário sobrescreve o atual", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTicketRepo := mocks.NewMockTicketRepository(ctrl)

		mockTicketRepo.EXPECT().
			GetByID(workspaceID, "t-1").
			Return(&domain.Ticket{ID: "t-1", Status: domain.TicketStatusOpen}, nil)

		mockTicketRepo.EXPECT().
			UpdateStatus(workspaceID, "t-1", domain.TicketStatusResolved).
			Return(nil)

		service := NewTicketService(mockTicketRepo)

		ticket, err := service.UpdateStatus(workspaceID, "t-1", domain.TicketStatusResolved)

		assert.NoError(t, err)
		assert.Equal(t, domain.TicketStatusResolved, ticket.Status)
	})

	t.Run("Chamado inexistente retorna not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTicketRepo := mocks.NewMockTicketRepository(ctrl)

		mockTicketRepo.EXPECT().
			GetByID(workspaceID, "t-404").
			Return(nil, nil)

		service := NewTicketService(mockTicketRepo)

		ticket, err := service.UpdateStatus(workspaceID, "t-404", domain.TicketStatusClosed)

		assert.Nil(t, ticket)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTicketRepo := mocks.NewMockTicketRepository(ctrl)

	filters := &domain.TicketFilters{Status: domain.TicketStatusOpen, Limit: 10}

	mockTicketRepo.EXPECT().
		List("ws-1", filters).
		Return([]*domain.Ticket{{ID: "t-1"}}, nil)

	mockTicketRepo.EXPECT().
		Count("ws-1", filters).
		Return(int64(3), nil)

	service := NewTicketService(mockTicketRepo)

	page, err := service.List("ws-1", filters)

	assert.NoError(t, err)
	assert.Len(t, page.Tickets, 1)
	assert.Equal(t, int64(3), page.Total)
}
