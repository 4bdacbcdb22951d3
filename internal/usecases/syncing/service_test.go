package syncing

import (
	"context"
	"testing"
	"time"

	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
	pipedrivemocks "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/mocks"
	"github.com/rgoulart/commission-tracker-api/infrastructure/lock"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository/mocks"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type syncFixture struct {
	integrator       *pipedrivemocks.MockIntegrator
	credentialRepo   *mocks.MockCredentialRepository
	organizationRepo *mocks.MockOrganizationRepository
	sellerRepo       *mocks.MockSellerRepository
	saleRepo         *mocks.MockSaleRepository
	service          *Service
}

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newSyncFixture(ctrl *gomock.Controller) *syncFixture {
	f := &syncFixture{
		integrator:       pipedrivemocks.NewMockIntegrator(ctrl),
		credentialRepo:   mocks.NewMockCredentialRepository(ctrl),
		organizationRepo: mocks.NewMockOrganizationRepository(ctrl),
		sellerRepo:       mocks.NewMockSellerRepository(ctrl),
		saleRepo:         mocks.NewMockSaleRepository(ctrl),
	}

	f.service = NewService(
		f.integrator,
		f.credentialRepo,
		f.organizationRepo,
		f.sellerRepo,
		f.saleRepo,
		NewThrottle(2*time.Minute).WithClock(func() time.Time { return testNow }),
		lock.NewNoopLocker(),
	).WithClock(func() time.Time { return testNow })

	return f
}

func int64Ptr(i int64) *int64 {
	return &i
}

func float64Ptr(f float64) *float64 {
	return &f
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func testCredential(lastSyncedAt *time.Time) *domain.Credential {
	return &domain.Credential{
		ID:             "cred-1",
		OrganizationID: "org-1",
		Provider:       domain.ProviderPipedrive,
		LastSyncedAt:   lastSyncedAt,
	}
}

func testOrganization() *domain.Organization {
	return &domain.Organization{
		ID:               "org-1",
		TaxDeductionRate: float64Ptr(10),
		CommissionRule:   &domain.CommissionRule{Type: domain.CommissionRuleFlat, Percent: 5},
	}
}

func testSellers() []*domain.Seller {
	return []*domain.Seller{
		{ID: "seller-1", OrganizationID: "org-1", Name: "Ana", ExternalOwnerID: int64Ptr(77), Active: true},
		{ID: "seller-2", OrganizationID: "org-1", Name: "Bruno", ExternalOwnerID: nil, Active: true},
	}
}

func TestService_SyncIfNeeded_ImportsNewDeals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)

	wonTime := "2026-03-20 14:30:00"
	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return([]pipedrivedomain.Deal{
		{ID: 501, Title: "Cliente Alfa", Value: 1000, Status: pipedrivedomain.DealStatusWon, WonTime: &wonTime, OwnerID: 77},
	}, nil)

	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return(nil, nil)
	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{}, testNow).Return(int64(0), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{}).Return(int64(0), nil)

	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)

	f.saleRepo.EXPECT().
		BatchInsertWithReceivables(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sales []*domain.Sale, receivables []*domain.Receivable) error {
			assert.Len(t, sales, 1)
			sale := sales[0]
			assert.Equal(t, "seller-1", sale.SellerID)
			assert.Equal(t, "501", *sale.ExternalDealID)
			assert.Equal(t, "cred-1", *sale.IntegrationID)
			assert.Equal(t, 1000.0, sale.GrossValue)
			assert.Equal(t, 900.0, sale.NetValue)
			assert.Equal(t, 45.0, sale.CommissionValue)
			assert.Equal(t, "2026-03-20", sale.SaleDate.Format(time.DateOnly))

			// Venda importada do CRM nasce como venda à vista
			assert.Len(t, receivables, 1)
			assert.Equal(t, 45.0, receivables[0].ExpectedAmount)
			return nil
		})

	f.credentialRepo.EXPECT().UpdateLastSyncedAt("cred-1", testNow).Return(nil)

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Errors)
}

func TestService_SyncIfNeeded_SecondRunIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)

	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return([]pipedrivedomain.Deal{
		{ID: 501, Title: "Cliente Alfa", Value: 1000, OwnerID: 77},
	}, nil)

	// O deal 501 já foi importado na primeira execução
	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return([]*domain.SaleRef{
		{ID: "sale-1", ExternalDealID: "501"},
	}, nil)
	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{}, testNow).Return(int64(0), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{}).Return(int64(0), nil)

	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)

	// Nenhum insert pode acontecer

	f.credentialRepo.EXPECT().UpdateLastSyncedAt("cred-1", testNow).Return(nil)

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, 1, result.SkippedExisting)
	assert.Equal(t, 1, result.Skipped)
}

func TestService_SyncIfNeeded_UnmappedSellerIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)

	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return([]pipedrivedomain.Deal{
		{ID: 601, Title: "Cliente Beta", Value: 500, OwnerID: 999},
	}, nil)

	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return(nil, nil)
	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{}, testNow).Return(int64(0), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{}).Return(int64(0), nil)

	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)

	f.credentialRepo.EXPECT().UpdateLastSyncedAt("cred-1", testNow).Return(nil)

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, 1, result.SkippedUnmapped)
	assert.Equal(t, 0, result.Errors)
}

func TestService_SyncIfNeeded_TombstoneAndRestore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)

	// O deal 700 sumiu da origem; o 701 voltou a aparecer
	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return([]pipedrivedomain.Deal{
		{ID: 701, Title: "Cliente Gama", Value: 800, OwnerID: 77},
	}, nil)

	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return([]*domain.SaleRef{
		{ID: "sale-700", ExternalDealID: "700"},
		{ID: "sale-701", ExternalDealID: "701", SourceDeletedAt: timePtr(testNow.Add(-24 * time.Hour))},
	}, nil)

	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{"700"}, testNow).Return(int64(1), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{"701"}).Return(int64(1), nil)

	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)

	f.credentialRepo.EXPECT().UpdateLastSyncedAt("cred-1", testNow).Return(nil)

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.RemovedFromSource)
	assert.Equal(t, 1, result.Restored)
	assert.Equal(t, 1, result.SkippedExisting)
	assert.Equal(t, 0, result.Synced)
}

func TestService_SyncIfNeeded_ThrottledWithinWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(timePtr(testNow.Add(-time.Minute))), nil)

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.True(t, result.Throttled)
	assert.Equal(t, 0, result.Synced)
}

func TestService_ForceSync_BypassesThrottle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(timePtr(testNow.Add(-time.Minute))), nil)

	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return(nil, nil)
	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return(nil, nil)
	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{}, testNow).Return(int64(0), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{}).Return(int64(0), nil)
	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)
	f.credentialRepo.EXPECT().UpdateLastSyncedAt("cred-1", testNow).Return(nil)

	result, err := f.service.ForceSync(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.False(t, result.Throttled)
}

func TestService_SyncIfNeeded_AuthFailureAbortsWithoutWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)

	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return(nil, pipedrive.ErrIntegrationAuth)

	// Nenhuma escrita pode acontecer, nem o registro do horário

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, pipedrive.ErrIntegrationAuth)
}

func TestService_SyncIfNeeded_InsertFailureRollsBackAndRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	deals := []pipedrivedomain.Deal{
		{ID: 501, Title: "Cliente Alfa", Value: 1000, OwnerID: 77},
	}

	// Primeira execução: a gravação do lote falha e a transação desfaz tudo.
	// O horário da sincronização não pode avançar.
	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)
	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return(deals, nil)
	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return(nil, nil)
	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{}, testNow).Return(int64(0), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{}).Return(int64(0), nil)
	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)
	f.saleRepo.EXPECT().
		BatchInsertWithReceivables(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	result, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.ErrorIs(t, err, ErrInsert)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Synced)

	var syncErr *SyncError
	assert.ErrorAs(t, err, &syncErr)
	assert.Equal(t, apiErrors.ErrSyncInsert, syncErr.Code)
	assert.Equal(t, "org-1", syncErr.OrganizationID)

	// Segunda execução: nada ficou para trás, então o mesmo deal não aparece
	// entre as vendas locais e é importado por inteiro
	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)
	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return(deals, nil)
	f.saleRepo.EXPECT().ListCRMRefs("org-1").Return(nil, nil)
	f.saleRepo.EXPECT().MarkSourceDeleted("org-1", []string{}, testNow).Return(int64(0), nil)
	f.saleRepo.EXPECT().ClearSourceDeleted("org-1", []string{}).Return(int64(0), nil)
	f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
	f.sellerRepo.EXPECT().ListByOrganization("org-1").Return(testSellers(), nil)
	f.saleRepo.EXPECT().
		BatchInsertWithReceivables(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sales []*domain.Sale, receivables []*domain.Receivable) error {
			assert.Len(t, sales, 1)
			assert.Equal(t, "501", *sales[0].ExternalDealID)
			assert.Len(t, receivables, 1)
			return nil
		})
	f.credentialRepo.EXPECT().UpdateLastSyncedAt("cred-1", testNow).Return(nil)

	result, err = f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 0, result.SkippedExisting)
}

func TestService_SyncIfNeeded_FetchFailureCarriesCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(testCredential(nil), nil)

	f.integrator.EXPECT().WonDeals(gomock.Any(), "org-1").Return(nil, assert.AnError)

	_, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.ErrorIs(t, err, ErrFetch)

	var syncErr *SyncError
	assert.ErrorAs(t, err, &syncErr)
	assert.Equal(t, apiErrors.ErrIntegrationFetch, syncErr.Code)
	assert.Equal(t, "org-1", syncErr.OrganizationID)
}

func TestService_SyncIfNeeded_NoCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSyncFixture(ctrl)

	f.credentialRepo.EXPECT().
		GetByOrganizationAndProvider("org-1", domain.ProviderPipedrive).
		Return(nil, nil)

	_, err := f.service.SyncIfNeeded(context.Background(), "org-1")
	assert.ErrorIs(t, err, pipedrive.ErrIntegrationNotFound)
}

func TestThrottle_Allow(t *testing.T) {
	throttle := NewThrottle(2 * time.Minute).WithClock(func() time.Time { return testNow })

	assert.True(t, throttle.Allow(nil))
	assert.False(t, throttle.Allow(timePtr(testNow.Add(-time.Minute))))
	assert.True(t, throttle.Allow(timePtr(testNow.Add(-2*time.Minute))))
	assert.True(t, throttle.Allow(timePtr(testNow.Add(-time.Hour))))
}

func TestBuildSellerMap(t *testing.T) {
	sellers := []*domain.Seller{
		{ID: "seller-1", ExternalOwnerID: int64Ptr(77), Active: true},
		{ID: "seller-2", ExternalOwnerID: int64Ptr(88), Active: false},
		{ID: "seller-3", ExternalOwnerID: nil, Active: true},
	}

	sellerMap := BuildSellerMap(sellers)

	sellerID, ok := sellerMap.Resolve(77)
	assert.True(t, ok)
	assert.Equal(t, "seller-1", sellerID)

	// Inativo ou sem vínculo fica fora do mapa
	_, ok = sellerMap.Resolve(88)
	assert.False(t, ok)
	_, ok = sellerMap.Resolve(0)
	assert.False(t, ok)
}
