package pipedrive

import (
	"context"
	"fmt"
	"testing"
	"time"

	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
	clientmocks "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/pipedriveclient/mocks"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository/mocks"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTokenManager_Session(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	apiDomain := "https://acme.pipedrive.com"

	credentialWithExpiry := func(expiresAt time.Time) *domain.Credential {
		return &domain.Credential{
			ID:             "cred-1",
			OrganizationID: "org-1",
			Provider:       domain.ProviderPipedrive,
			AccountDomain:  &apiDomain,
			AccessToken:    "access-antigo",
			RefreshToken:   "refresh-antigo",
			ExpiresAt:      expiresAt,
		}
	}

	t.Run("token válido é usado sem renovação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		credentialRepo := mocks.NewMockCredentialRepository(ctrl)
		client := clientmocks.NewMockClient(ctrl)

		credentialRepo.EXPECT().
			GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
			Return(credentialWithExpiry(now.Add(time.Hour)), nil)

		tm := NewTokenManager(credentialRepo, client).WithClock(func() time.Time { return now })

		session, err := tm.Session(context.Background(), "org-1")
		assert.NoError(t, err)
		assert.Equal(t, apiDomain, session.APIDomain)
		assert.Equal(t, "access-antigo", session.AccessToken)
	})

	t.Run("token dentro da margem de 5 minutos é renovado e persistido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		credentialRepo := mocks.NewMockCredentialRepository(ctrl)
		client := clientmocks.NewMockClient(ctrl)

		// Expira em 4 minutos: ainda válido, mas dentro da margem
		credentialRepo.EXPECT().
			GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
			Return(credentialWithExpiry(now.Add(4*time.Minute)), nil)

		client.EXPECT().
			RefreshToken(gomock.Any(), "refresh-antigo").
			Return(&pipedrivedomain.TokenResponse{
				AccessToken:  "access-novo",
				RefreshToken: "refresh-novo",
				ExpiresIn:    3600,
				APIDomain:    apiDomain,
			}, nil)

		credentialRepo.EXPECT().
			UpdateTokens("cred-1", "access-novo", "refresh-novo", now.Add(time.Hour), gomock.Any()).
			Return(nil)

		tm := NewTokenManager(credentialRepo, client).WithClock(func() time.Time { return now })

		session, err := tm.Session(context.Background(), "org-1")
		assert.NoError(t, err)
		assert.Equal(t, "access-novo", session.AccessToken)
	})

	t.Run("organização sem credencial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		credentialRepo := mocks.NewMockCredentialRepository(ctrl)
		client := clientmocks.NewMockClient(ctrl)

		credentialRepo.EXPECT().
			GetByOrganizationAndProvider("org-2", domain.ProviderPipedrive).
			Return(nil, nil)

		tm := NewTokenManager(credentialRepo, client).WithClock(func() time.Time { return now })

		session, err := tm.Session(context.Background(), "org-2")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, ErrIntegrationNotFound)
	})

	t.Run("renovação rejeitada preserva a credencial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		credentialRepo := mocks.NewMockCredentialRepository(ctrl)
		client := clientmocks.NewMockClient(ctrl)

		credentialRepo.EXPECT().
			GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
			Return(credentialWithExpiry(now.Add(-time.Minute)), nil)

		client.EXPECT().
			RefreshToken(gomock.Any(), "refresh-antigo").
			Return(nil, fmt.Errorf("endpoint de token respondeu com status 401"))

		// UpdateTokens não pode ser chamado quando a renovação falha

		tm := NewTokenManager(credentialRepo, client).WithClock(func() time.Time { return now })

		session, err := tm.Session(context.Background(), "org-1")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, ErrIntegrationAuth)
	})

	t.Run("token exatamente na margem é tratado como expirado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		credentialRepo := mocks.NewMockCredentialRepository(ctrl)
		client := clientmocks.NewMockClient(ctrl)

		credentialRepo.EXPECT().
			GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
			Return(credentialWithExpiry(now.Add(5*time.Minute)), nil)

		client.EXPECT().
			RefreshToken(gomock.Any(), "refresh-antigo").
			Return(&pipedrivedomain.TokenResponse{
				AccessToken:  "access-novo",
				RefreshToken: "refresh-novo",
				ExpiresIn:    3600,
				APIDomain:    apiDomain,
			}, nil)

		credentialRepo.EXPECT().
			UpdateTokens("cred-1", "access-novo", "refresh-novo", gomock.Any(), gomock.Any()).
			Return(nil)

		tm := NewTokenManager(credentialRepo, client).WithClock(func() time.Time { return now })

		session, err := tm.Session(context.Background(), "org-1")
		assert.NoError(t, err)
		assert.Equal(t, "access-novo", session.AccessToken)
	})
}
