package escrow

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

	t.Run("Transação nova abre como pending com moeda padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEscrowRepo := mocks.NewMockEscrowRepository(ctrl)

		mockEscrowRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(tx *domain.EscrowTransaction) error {
				assert.True(t, strings.HasPrefix(tx.Reference, "ESC-"))
				assert.Equal(t, domain.EscrowStatusPending, tx.Status)
				assert.Equal(t, "BRL", tx.Currency)
				return nil
			})

		service := NewEscrowService(mockEscrowRepo)

		tx, err := service.Create(workspaceID, &domain.CreateEscrowRequest{
			Title:       "Reforma do escritório",
			AmountCents: 250000,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.EscrowStatusPending, tx.Status)
	})

	t.Run("Valor não positivo retorna erro de validação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEscrowRepo := mocks.NewMockEscrowRepository(ctrl)
		service := NewEscrowService(mockEscrowRepo)

		tx, err := service.Create(workspaceID, &domain.CreateEscrowRequest{
			Title:       "Reforma",
			AmountCents: 0,
		})

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	const workspaceID = "ws-1"

	tests := []struct {
		name    string
		status  domain.EscrowStatus
		wantErr bool
	}{
		{name: "disputed pertence ao vocabulário", status: domain.EscrowStatusDisputed},
		{name: "completed pertence ao vocabulário", status: domain.EscrowStatusCompleted},
		{name: "refunded não pertence ao vocabulário", status: domain.EscrowStatus("refunded"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEscrowRepo := mocks.NewMockEscrowRepository(ctrl)

			if !tt.wantErr {
				mockEscrowRepo.EXPECT().
					GetByID(workspaceID, "e-1").
					Return(&domain.EscrowTransaction{ID: "e-1", Status: domain.EscrowStatusActive}, nil)

				mockEscrowRepo.EXPECT().
					UpdateStatus(workspaceID, "e-1", tt.status).
					Return(nil)
			}

			service := NewEscrowService(mockEscrowRepo)

			tx, err := service.UpdateStatus(workspaceID, "e-1", tt.status)

			if tt.wantErr {
				assert.Nil(t, tx)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.status, tx.Status)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEscrowRepo := mocks.NewMockEscrowRepository(ctrl)

	filters := &domain.EscrowFilters{Status: domain.EscrowStatusActive, Limit: 20}

	mockEscrowRepo.EXPECT().
		List("ws-1", filters).
		Return([]*domain.EscrowTransaction{{ID: "e-1"}, {ID: "e-2"}}, nil)

	mockEscrowRepo.EXPECT().
		Count("ws-1", filters).
		Return(int64(2), nil)

	service := NewEscrowService(mockEscrowRepo)

	page, err := service.List("ws-1", filters)

	assert.NoError(t, err)
	assert.Len(t, page.Transactions, 2)
	assert.Equal(t, int64(2), page.Total)
}
