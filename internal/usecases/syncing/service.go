package syncing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	"github.com/rgoulart/commission-tracker-api/infrastructure/lock"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/commissioning"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/receivabling"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// lockTTL cobre a duração esperada de uma execução completa
const lockTTL = 2 * time.Minute

// Syncer sincroniza os deals ganhos do CRM com o ledger interno de vendas
type Syncer interface {
	SyncIfNeeded(ctx context.Context, organizationID string) (*domain.SyncResult, error)
	ForceSync(ctx context.Context, organizationID string) (*domain.SyncResult, error)
}

type Service struct {
	integrator       pipedrive.Integrator
	credentialRepo   repository.CredentialRepository
	organizationRepo repository.OrganizationRepository
	sellerRepo       repository.SellerRepository
	saleRepo         repository.SaleRepository
	throttle         *Throttle
	locker           lock.Locker
	now              func() time.Time
}

func NewService(
	integrator pipedrive.Integrator,
	credentialRepo repository.CredentialRepository,
	organizationRepo repository.OrganizationRepository,
	sellerRepo repository.SellerRepository,
	saleRepo repository.SaleRepository,
	throttle *Throttle,
	locker lock.Locker,
) *Service {
	return &Service{
		integrator:       integrator,
		credentialRepo:   credentialRepo,
		organizationRepo: organizationRepo,
		sellerRepo:       sellerRepo,
		saleRepo:         saleRepo,
		throttle:         throttle,
		locker:           locker,
		now:              time.Now,
	}
}

// WithClock injeta um relógio determinístico para testes
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SyncIfNeeded executa a sincronização respeitando a janela mínima entre
// execuções. Dentro da janela devolve um resultado de efeito zero.
func (s *Service) SyncIfNeeded(ctx context.Context, organizationID string) (*domain.SyncResult, error) {
	return s.run(ctx, organizationID, false)
}

// ForceSync executa a sincronização ignorando a janela mínima
func (s *Service) ForceSync(ctx context.Context, organizationID string) (*domain.SyncResult, error) {
	return s.run(ctx, organizationID, true)
}

func (s *Service) run(ctx context.Context, organizationID string, force bool) (*domain.SyncResult, error) {
	credential, err := s.credentialRepo.GetByOrganizationAndProvider(organizationID, domain.ProviderPipedrive)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a credencial da organização")
	}

	if credential == nil {
		return nil, pipedrive.ErrIntegrationNotFound
	}

	if !force && !s.throttle.Allow(credential.LastSyncedAt) {
		logrus.WithField("organization_id", organizationID).
			Debug("Sincronização dentro da janela mínima. Nada a fazer.")
		return &domain.SyncResult{Throttled: true}, nil
	}

	// Exclusão mútua por organização entre instâncias. Perder o lock equivale
	// a cair na janela: a outra instância já está sincronizando.
	lease, err := s.locker.Acquire(ctx, "sync:pipedrive:"+organizationID, lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return &domain.SyncResult{Throttled: true}, nil
		}
		return nil, errors.Wrap(err, "erro ao adquirir o lock de sincronização")
	}
	defer func() {
		if err := lease.Release(ctx); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar o lock de sincronização")
		}
	}()

	result, err := s.reconcile(ctx, organizationID, credential)
	if err != nil {
		return result, err
	}

	// A conclusão sempre registra o horário, mesmo sem nada para importar
	if err := s.credentialRepo.UpdateLastSyncedAt(credential.ID, s.now()); err != nil {
		logrus.WithError(err).Error("Erro ao registrar o horário da sincronização")
	}

	logrus.WithFields(logrus.Fields{
		"organization_id":     organizationID,
		"synced":              result.Synced,
		"skipped":             result.Skipped,
		"errors":              result.Errors,
		"removed_from_source": result.RemovedFromSource,
		"restored":            result.Restored,
	}).Info("Sincronização de deals concluída")

	return result, nil
}

func (s *Service) reconcile(ctx context.Context, organizationID string, credential *domain.Credential) (*domain.SyncResult, error) {
	result := &domain.SyncResult{}

	deals, err := s.integrator.WonDeals(ctx, organizationID)
	if err != nil {
		if errors.Is(err, pipedrive.ErrIntegrationNotFound) || errors.Is(err, pipedrive.ErrIntegrationAuth) {
			return nil, err
		}
		return nil, NewSyncError(ErrFetch, apiErrors.ErrIntegrationFetch, organizationID, err.Error())
	}

	refs, err := s.saleRepo.ListCRMRefs(organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar as vendas importadas")
	}

	local := make(map[string]*domain.SaleRef, len(refs))
	for _, ref := range refs {
		local[ref.ExternalDealID] = ref
	}

	remote := make(map[string]struct{}, len(deals))
	for _, deal := range deals {
		remote[strconv.FormatInt(deal.ID, 10)] = struct{}{}
	}

	// Deals que sumiram da origem viram tombstone; deals que reapareceram
	// perdem o tombstone. Vendas presentes e sem tombstone não são tocadas:
	// edições remotas posteriores nunca sobrescrevem os valores locais.
	missing := make([]string, 0)
	returned := make([]string, 0)
	for externalID, ref := range local {
		if _, ok := remote[externalID]; ok {
			if ref.SourceDeletedAt != nil {
				returned = append(returned, externalID)
			}
			continue
		}
		if ref.SourceDeletedAt == nil {
			missing = append(missing, externalID)
		}
	}

	removed, err := s.saleRepo.MarkSourceDeleted(organizationID, missing, s.now())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao marcar vendas removidas na origem")
	}
	result.RemovedFromSource = int(removed)

	restored, err := s.saleRepo.ClearSourceDeleted(organizationID, returned)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao restaurar vendas que voltaram à origem")
	}
	result.Restored = int(restored)

	organization, err := s.organizationRepo.GetByID(organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a organização")
	}
	if organization == nil {
		return nil, fmt.Errorf("organização não encontrada: %s", organizationID)
	}

	sellers, err := s.sellerRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar os vendedores")
	}
	sellerMap := BuildSellerMap(sellers)

	newSales := make([]*domain.Sale, 0)
	newReceivables := make([]*domain.Receivable, 0)

	for _, deal := range deals {
		externalID := strconv.FormatInt(deal.ID, 10)

		if _, exists := local[externalID]; exists {
			result.SkippedExisting++
			continue
		}

		sellerID, mapped := sellerMap.Resolve(deal.OwnerID.Int64())
		if !mapped {
			logrus.WithFields(logrus.Fields{
				"organization_id": organizationID,
				"deal_id":         deal.ID,
				"owner_id":        deal.OwnerID.Int64(),
			}).Warn("Deal sem vendedor mapeado. Pulando.")
			result.SkippedUnmapped++
			continue
		}

		id, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar o ID da venda")
		}

		netValue, commissionValue := commissioning.ComputeSaleValues(deal.Value, organization)
		externalDealID := externalID
		integrationID := credential.ID

		sale := &domain.Sale{
			ID:              id,
			OrganizationID:  organizationID,
			SellerID:        sellerID,
			ExternalDealID:  &externalDealID,
			IntegrationID:   &integrationID,
			ClientName:      deal.Title,
			GrossValue:      deal.Value,
			NetValue:        netValue,
			CommissionValue: commissionValue,
			SaleDate:        deal.SaleDate(s.now()),
		}

		// Venda importada do CRM não traz condição de pagamento: o plano
		// nasce como venda à vista e pode ser regenerado depois
		schedule, err := receivabling.BuildSchedule(sale)
		if err != nil {
			return nil, err
		}

		newSales = append(newSales, sale)
		newReceivables = append(newReceivables, schedule...)
	}

	result.Skipped = result.SkippedExisting + result.SkippedUnmapped

	if len(newSales) > 0 {
		// Vendas e parcelas entram na mesma transação: uma falha no meio do
		// lote não pode deixar vendas sem plano de recebimento
		if err := s.saleRepo.BatchInsertWithReceivables(ctx, newSales, newReceivables); err != nil {
			result.Errors = len(newSales)
			return result, NewSyncError(ErrInsert, apiErrors.ErrSyncInsert, organizationID, err.Error())
		}

		result.Synced = len(newSales)
	}

	return result, nil
}
