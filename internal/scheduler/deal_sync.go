package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/config"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/syncing"
	"github.com/sirupsen/logrus"
)

// DealSyncConfig representa a configuração do agendador de sincronização de deals
type DealSyncConfig struct {
	CronSchedule     string
	ThrottleInterval time.Duration
	MaxConcurrentOrg int
	SyncEnabled      bool
}

// DealSyncStatus é o retrato do agendador exposto pela API
type DealSyncStatus struct {
	Running             bool              `json:"running"`
	Enabled             bool              `json:"enabled"`
	CronSchedule        string            `json:"cron_schedule"`
	LastSyncStartedAt   *time.Time        `json:"last_sync_started_at,omitempty"`
	LastSyncCompletedAt *time.Time        `json:"last_sync_completed_at,omitempty"`
	LastSyncSummary     *SyncCycleSummary `json:"last_sync_summary,omitempty"`
}

// SyncCycleSummary agrega o resultado de um ciclo completo (todas as organizações)
type SyncCycleSummary struct {
	Organizations int `json:"organizations"`
	Synced        int `json:"synced"`
	Skipped       int `json:"skipped"`
	Errors        int `json:"errors"`
	Throttled     int `json:"throttled"`
	Failed        int `json:"failed"`
}

// DealSyncService gerencia o agendamento e execução da sincronização de deals
// de todas as organizações com o Pipedrive conectado
type DealSyncService struct {
	scheduler           *gocron.Scheduler
	config              DealSyncConfig
	syncer              syncing.Syncer
	credentialRepo      repository.CredentialRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSummary     *SyncCycleSummary
}

// NewDealSyncService cria uma nova instância do serviço de sincronização de deals
func NewDealSyncService(
	syncer syncing.Syncer,
	credentialRepo repository.CredentialRepository,
	appConfig *config.Config,
) *DealSyncService {
	syncConfig := DealSyncConfig{
		CronSchedule:     appConfig.DealSync.CronSchedule,
		ThrottleInterval: appConfig.DealSync.ThrottleInterval,
		MaxConcurrentOrg: appConfig.DealSync.MaxConcurrentOrg,
		SyncEnabled:      appConfig.DealSync.Enabled,
	}

	if syncConfig.MaxConcurrentOrg < 1 {
		syncConfig.MaxConcurrentOrg = 1
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"throttle_interval":   syncConfig.ThrottleInterval.String(),
		"max_concurrent_orgs": syncConfig.MaxConcurrentOrg,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de deals carregada")

	return &DealSyncService{
		scheduler:      scheduler,
		config:         syncConfig,
		syncer:         syncer,
		credentialRepo: credentialRepo,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *DealSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de deals desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de deals")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllOrganizations(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de deals: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de deals")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara um ciclo completo fora do horário agendado.
// Retorna erro se um ciclo já estiver em andamento.
func (s *DealSyncService) TriggerManualSync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return fmt.Errorf("sincronização de deals já em andamento")
	}
	s.syncMutex.Unlock()

	go s.syncAllOrganizations(ctx)
	return nil
}

// GetStatus devolve o estado atual do agendador
func (s *DealSyncService) GetStatus() *DealSyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := &DealSyncStatus{
		Running:      s.syncRunning,
		Enabled:      s.config.SyncEnabled,
		CronSchedule: s.config.CronSchedule,
	}

	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastSyncStartedAt = &startedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastSyncCompletedAt = &completedAt
	}
	if s.lastSyncSummary != nil {
		summary := *s.lastSyncSummary
		status.LastSyncSummary = &summary
	}

	return status
}

// syncAllOrganizations sincroniza os deals de todas as organizações conectadas
func (s *DealSyncService) syncAllOrganizations(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de deals já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de deals para todas as organizações conectadas")

	credentials, err := s.credentialRepo.ListByProvider(domain.ProviderPipedrive)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar credenciais para sincronização de deals")
		return
	}

	if len(credentials) == 0 {
		logrus.Info("Nenhuma organização conectada ao Pipedrive, nada a sincronizar")
		s.storeSummary(&SyncCycleSummary{})
		return
	}

	summary := &SyncCycleSummary{Organizations: len(credentials)}

	// Limitar quantas organizações sincronizam em paralelo
	semaphore := make(chan struct{}, s.config.MaxConcurrentOrg)
	var wg sync.WaitGroup
	var summaryMutex sync.Mutex

	for _, credential := range credentials {
		wg.Add(1)

		go func(organizationID string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := s.syncer.SyncIfNeeded(ctx, organizationID)

			summaryMutex.Lock()
			defer summaryMutex.Unlock()

			if err != nil {
				summary.Failed++
				if errors.Is(err, pipedrive.ErrIntegrationAuth) {
					logrus.WithError(err).WithField("organization_id", organizationID).
						Warn("Credencial do Pipedrive inválida, organização precisa reconectar")
					return
				}
				logrus.WithError(err).WithField("organization_id", organizationID).
					Error("Erro ao sincronizar deals da organização")
				return
			}

			if result.Throttled {
				summary.Throttled++
				return
			}

			summary.Synced += result.Synced
			summary.Skipped += result.Skipped
			summary.Errors += result.Errors
		}(credential.OrganizationID)
	}

	wg.Wait()

	s.storeSummary(summary)

	logrus.WithFields(logrus.Fields{
		"organizations": summary.Organizations,
		"synced":        summary.Synced,
		"skipped":       summary.Skipped,
		"errors":        summary.Errors,
		"throttled":     summary.Throttled,
		"failed":        summary.Failed,
		"duration":      time.Since(startTime).String(),
	}).Info("Sincronização de deals concluída")
}

func (s *DealSyncService) storeSummary(summary *SyncCycleSummary) {
	s.syncMutex.Lock()
	s.lastSyncSummary = summary
	s.syncMutex.Unlock()
}
