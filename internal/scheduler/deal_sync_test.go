package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository/mocks"
	"github.com/rgoulart/commission-tracker-api/internal/config"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	syncingmocks "github.com/rgoulart/commission-tracker-api/internal/usecases/syncing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestConfig() *config.Config {
	return &config.Config{
		DealSync: config.DealSync{
			CronSchedule:     "*/30 * * * *",
			ThrottleInterval: 2 * time.Minute,
			MaxConcurrentOrg: 2,
			Enabled:          true,
		},
	}
}

func credentialFor(organizationID string) *domain.Credential {
	return &domain.Credential{
		ID:             "cred-" + organizationID,
		OrganizationID: organizationID,
		Provider:       domain.ProviderPipedrive,
	}
}

func TestSyncAllOrganizations(t *testing.T) {
	t.Run("agrega os resultados de todas as organizações", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		syncer := syncingmocks.NewMockSyncer(ctrl)
		credentialRepo := mocks.NewMockCredentialRepository(ctrl)

		credentialRepo.EXPECT().ListByProvider(domain.ProviderPipedrive).Return([]*domain.Credential{
			credentialFor("org-1"),
			credentialFor("org-2"),
			credentialFor("org-3"),
		}, nil)

		syncer.EXPECT().SyncIfNeeded(gomock.Any(), "org-1").
			Return(&domain.SyncResult{Synced: 2, Skipped: 1}, nil)
		syncer.EXPECT().SyncIfNeeded(gomock.Any(), "org-2").
			Return(&domain.SyncResult{Throttled: true}, nil)
		syncer.EXPECT().SyncIfNeeded(gomock.Any(), "org-3").
			Return(nil, errors.New("erro transitório"))

		service := NewDealSyncService(syncer, credentialRepo, newTestConfig())
		service.syncAllOrganizations(context.Background())

		status := service.GetStatus()
		assert.False(t, status.Running)
		require.NotNil(t, status.LastSyncSummary)
		assert.Equal(t, 3, status.LastSyncSummary.Organizations)
		assert.Equal(t, 2, status.LastSyncSummary.Synced)
		assert.Equal(t, 1, status.LastSyncSummary.Skipped)
		assert.Equal(t, 1, status.LastSyncSummary.Throttled)
		assert.Equal(t, 1, status.LastSyncSummary.Failed)
		assert.NotNil(t, status.LastSyncStartedAt)
		assert.NotNil(t, status.LastSyncCompletedAt)
	})

	t.Run("sem organizações conectadas registra ciclo vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		syncer := syncingmocks.NewMockSyncer(ctrl)
		credentialRepo := mocks.NewMockCredentialRepository(ctrl)

		credentialRepo.EXPECT().ListByProvider(domain.ProviderPipedrive).
			Return([]*domain.Credential{}, nil)

		service := NewDealSyncService(syncer, credentialRepo, newTestConfig())
		service.syncAllOrganizations(context.Background())

		status := service.GetStatus()
		require.NotNil(t, status.LastSyncSummary)
		assert.Equal(t, 0, status.LastSyncSummary.Organizations)
	})

	t.Run("falha ao listar credenciais não registra resumo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		syncer := syncingmocks.NewMockSyncer(ctrl)
		credentialRepo := mocks.NewMockCredentialRepository(ctrl)

		credentialRepo.EXPECT().ListByProvider(domain.ProviderPipedrive).
			Return(nil, errors.New("banco indisponível"))

		service := NewDealSyncService(syncer, credentialRepo, newTestConfig())
		service.syncAllOrganizations(context.Background())

		status := service.GetStatus()
		assert.Nil(t, status.LastSyncSummary)
	})
}

func TestTriggerManualSync(t *testing.T) {
	t.Run("rejeita quando já existe ciclo em andamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		syncer := syncingmocks.NewMockSyncer(ctrl)
		credentialRepo := mocks.NewMockCredentialRepository(ctrl)

		service := NewDealSyncService(syncer, credentialRepo, newTestConfig())

		service.syncMutex.Lock()
		service.syncRunning = true
		service.syncMutex.Unlock()

		err := service.TriggerManualSync(context.Background())
		assert.Error(t, err)
	})
}

func TestGetStatus(t *testing.T) {
	t.Run("reflete a configuração antes de qualquer ciclo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		syncer := syncingmocks.NewMockSyncer(ctrl)
		credentialRepo := mocks.NewMockCredentialRepository(ctrl)

		service := NewDealSyncService(syncer, credentialRepo, newTestConfig())

		status := service.GetStatus()
		assert.False(t, status.Running)
		assert.True(t, status.Enabled)
		assert.Equal(t, "*/30 * * * *", status.CronSchedule)
		assert.Nil(t, status.LastSyncStartedAt)
		assert.Nil(t, status.LastSyncCompletedAt)
		assert.Nil(t, status.LastSyncSummary)
	})
}
