package campaigns

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/infrastructure/mailer"
	"github.com/vfg2006/bizhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeMailer registra os destinatários e devolve sucesso ou falha conforme
// configurado, sem tocar a rede
type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	failTo map[string]bool
}

func (f *fakeMailer) Send(msg *mailer.Message) *mailer.SendResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTo[msg.To] {
		return &mailer.SendResult{Success: false, Service: mailer.ServiceSMTPRelay, Error: "connection refused"}
	}
	f.sent = append(f.sent, msg.To)
	return &mailer.SendResult{Success: true, Service: mailer.ServiceTransactional, MessageID: "msg-1"}
}

func (f *fakeMailer) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func TestService_Create(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Lista de destinatários inexistente retorna not found sem persistir", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockListRepo.EXPECT().
			GetByID(workspaceID, "l-404").
			Return(nil, nil)

		// Insert não pode ser chamado quando a referência falha

		service := NewCampaignService(mockCampaignRepo, mockContactRepo, mockListRepo, &fakeMailer{})

		campaign, err := service.Create(workspaceID, &domain.CreateCampaignRequest{
			Name:            "Lançamento",
			RecipientListID: "l-404",
		})

		assert.Nil(t, campaign)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Lista válida cria a campanha como draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockListRepo.EXPECT().
			GetByID(workspaceID, "l-1").
			Return(&domain.ContactList{ID: "l-1", WorkspaceID: workspaceID}, nil)

		mockCampaignRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(c *domain.Campaign) error {
				assert.Equal(t, domain.CampaignStatusDraft, c.Status)
				assert.NotEmpty(t, c.ID)
				return nil
			})

		service := NewCampaignService(mockCampaignRepo, mockContactRepo, mockListRepo, &fakeMailer{})

		campaign, err := service.Create(workspaceID, &domain.CreateCampaignRequest{
			Name:            "Lançamento",
			Subject:         "Novidades",
			RecipientListID: "l-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
	})

	t.Run("Nome vazio retorna erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		service := NewCampaignService(mockCampaignRepo, mockContactRepo, mockListRepo, &fakeMailer{})

		campaign, err := service.Create(workspaceID, &domain.CreateCampaignRequest{RecipientListID: "l-1"})

		assert.Nil(t, campaign)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	const workspaceID = "ws-1"

	t.Run("Status fora do vocabulário retorna erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		service := NewCampaignService(mockCampaignRepo, mockContactRepo, mockListRepo, &fakeMailer{})

		campaign, err := service.UpdateStatus(workspaceID, "cmp-1", domain.CampaignStatus("archived"))

		assert.Nil(t, campaign)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Qualquer status do vocabulário sobrescreve o atual", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockContactRepo := mocks.NewMockContactRepository(ctrl)
		mockListRepo := mocks.NewMockContactListRepository(ctrl)

		mockCampaignRepo.EXPECT().
			GetByID(workspaceID, "cmp-1").
			Return(&domain.Campaign{ID: "cmp-1", Status: domain.CampaignStatusSent}, nil)

		mockCampaignRepo.EXPECT().
			UpdateStatus(workspaceID, "cmp-1", domain.CampaignStatusDraft).
			Return(nil)

		service := NewCampaignService(mockCampaignRepo, mockContactRepo, mockListRepo, &fakeMailer{})

		// Volta de sent para draft: não há máquina de estados impedindo
		campaign, err := service.UpdateStatus(workspaceID, "cmp-1", domain.CampaignStatusDraft)

		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
	})
}

func TestService_Send(t *testing.T) {
	const workspaceID = "ws-1"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	mockListRepo := mocks.NewMockContactListRepository(ctrl)

	campaign := &domain.Campaign{
		ID:              "cmp-1",
		WorkspaceID:     workspaceID,
		Subject:         "Novidades",
		Body:            "<p>Olá</p>",
		RecipientListID: "l-1",
		Status:          domain.CampaignStatusDraft,
	}

	recipients := []*domain.Contact{
		{ID: "c-1", Email: "ana@example.com"},
		{ID: "c-2", Email: "bia@example.com"},
	}

	mockCampaignRepo.EXPECT().
		GetByID(workspaceID, "cmp-1").
		Return(campaign, nil)

	mockContactRepo.EXPECT().
		ListByListID(workspaceID, "l-1").
		Return(recipients, nil)

	mockCampaignRepo.EXPECT().
		UpdateStatus(workspaceID, "cmp-1", domain.CampaignStatusSending).
		Return(nil)

	done := make(chan struct{})
	mockCampaignRepo.EXPECT().
		UpdateStatus(workspaceID, "cmp-1", domain.CampaignStatusSent).
		DoAndReturn(func(_, _ string, _ domain.CampaignStatus) error {
			close(done)
			return nil
		})

	fm := &fakeMailer{failTo: map[string]bool{"bia@example.com": true}}
	service := NewCampaignService(mockCampaignRepo, mockContactRepo, mockListRepo, fm)

	result, err := service.Send(workspaceID, "cmp-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusSending, result.Status)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("envio em background não terminou")
	}

	// Falha de um destinatário não interrompe o lote
	assert.Equal(t, []string{"ana@example.com"}, fm.sentTo())
}
