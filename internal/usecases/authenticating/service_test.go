package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/bizhub-api/infrastructure/repository/mocks"
	"github.com/vfg2006/bizhub-api/internal/config"
	"github.com/vfg2006/bizhub-api/internal/domain"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(userRepo *mocks.MockUserRepository, workspaceRepo *mocks.MockWorkspaceRepository) Authenticator {
	return NewService(userRepo, workspaceRepo, &config.Config{SecretKey: "segredo-de-teste"})
}

func TestRegister(t *testing.T) {
	t.Run("deve criar o workspace e o usuário administrador em sequência", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(nil, nil)

		var workspaceID string
		workspaceRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(w *domain.Workspace) error {
			assert.Equal(t, "Loja da Maria", w.Name)
			assert.NotEmpty(t, w.OwnerID)
			workspaceID = w.ID
			return nil
		})

		userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) error {
			assert.Equal(t, workspaceID, u.WorkspaceID)
			assert.Equal(t, RoleAdmin, u.RoleID)
			assert.True(t, u.Active)
			assert.NotEmpty(t, u.PasswordHash)
			return nil
		})

		service := newAuthService(userRepo, workspaceRepo)

		user, err := service.Register(&domain.RegisterRequest{
			Name:          "Maria",
			Email:         "Maria@Example.com",
			Password:      "Senha@Forte1",
			WorkspaceName: "Loja da Maria",
		})

		assert.NoError(t, err)
		assert.Equal(t, "maria@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("deve usar o nome do usuário quando o workspace não é nomeado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("joao@example.com").Return(nil, nil)
		workspaceRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(w *domain.Workspace) error {
			assert.Equal(t, "João", w.Name)
			return nil
		})
		userRepo.EXPECT().CreateUser(gomock.Any()).Return(nil)

		service := newAuthService(userRepo, workspaceRepo)

		_, err := service.Register(&domain.RegisterRequest{
			Name:     "João",
			Email:    "joao@example.com",
			Password: "Senha@Forte1",
		})

		assert.NoError(t, err)
	})

	t.Run("deve recusar email já cadastrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").
			Return(&domain.User{ID: "u-1", Email: "maria@example.com"}, nil)

		service := newAuthService(userRepo, workspaceRepo)

		_, err := service.Register(&domain.RegisterRequest{
			Name:     "Maria",
			Email:    "maria@example.com",
			Password: "Senha@Forte1",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("deve recusar senha fraca antes de tocar o banco de escrita", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(nil, nil)

		service := newAuthService(userRepo, workspaceRepo)

		_, err := service.Register(&domain.RegisterRequest{
			Name:     "Maria",
			Email:    "maria@example.com",
			Password: "fraca",
		})

		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestLoginUser(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Senha@Forte1"), bcrypt.DefaultCost)

	t.Run("deve retornar token para credenciais válidas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
			ID:           "u-1",
			Email:        "maria@example.com",
			PasswordHash: string(hash),
			Active:       true,
			RoleID:       RoleAdmin,
			WorkspaceID:  "ws-1",
		}, nil)

		service := newAuthService(userRepo, workspaceRepo)

		token, err := service.LoginUser("maria@example.com", "Senha@Forte1")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		// O token emitido deve voltar pelas mesmas claims
		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "ws-1", claims.WorkspaceID)
		assert.Equal(t, "ws-1", claims.OwnerID())
	})

	t.Run("deve recusar senha incorreta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
			ID:           "u-1",
			Email:        "maria@example.com",
			PasswordHash: string(hash),
			Active:       true,
		}, nil)

		service := newAuthService(userRepo, workspaceRepo)

		_, err := service.LoginUser("maria@example.com", "outra-senha")

		assert.ErrorIs(t, err, ErrInvalidCredentials)

		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, envelope.CodeUnauthorized, authErr.Code)
	})

	t.Run("deve recusar conta desativada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		workspaceRepo := mocks.NewMockWorkspaceRepository(ctrl)

		userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
			ID:           "u-1",
			Email:        "maria@example.com",
			PasswordHash: string(hash),
			Active:       false,
		}, nil)

		service := newAuthService(userRepo, workspaceRepo)

		_, err := service.LoginUser("maria@example.com", "Senha@Forte1")

		assert.ErrorIs(t, err, ErrUserDisabled)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	service := newAuthService(nil, nil)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"senha completa", "Senha@Forte1", false},
		{"curta demais", "S@f1", true},
		{"sem maiúscula", "senha@forte1", true},
		{"sem número", "Senha@Forte", true},
		{"sem caractere especial", "SenhaForte1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
