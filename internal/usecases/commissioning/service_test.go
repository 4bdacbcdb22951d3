package commissioning

import (
	"testing"

	"github.com/rgoulart/commission-tracker-api/infrastructure/repository/mocks"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestUpdateCommissionRule(t *testing.T) {
	newService := func(t *testing.T) (Policier, *mocks.MockOrganizationRepository) {
		ctrl := gomock.NewController(t)
		organizationRepo := mocks.NewMockOrganizationRepository(ctrl)
		saleRepo := mocks.NewMockSaleRepository(ctrl)
		return NewService(organizationRepo, saleRepo), organizationRepo
	}

	t.Run("regra fixa válida é gravada", func(t *testing.T) {
		service, organizationRepo := newService(t)

		rule := &domain.CommissionRule{Type: domain.CommissionRuleFlat, Percent: 5}
		organizationRepo.EXPECT().UpdateCommissionRule("org-1", rule).Return(nil)

		err := service.UpdateCommissionRule("org-1", rule)
		assert.NoError(t, err)
	})

	t.Run("regra nula desliga a comissão", func(t *testing.T) {
		service, organizationRepo := newService(t)

		organizationRepo.EXPECT().UpdateCommissionRule("org-1", nil).Return(nil)

		err := service.UpdateCommissionRule("org-1", nil)
		assert.NoError(t, err)
	})

	t.Run("percentual fora do intervalo é rejeitado", func(t *testing.T) {
		service, _ := newService(t)

		err := service.UpdateCommissionRule("org-1", &domain.CommissionRule{
			Type:    domain.CommissionRuleFlat,
			Percent: 120,
		})
		assert.Error(t, err)
	})

	t.Run("faixas sobrepostas são rejeitadas", func(t *testing.T) {
		service, _ := newService(t)

		err := service.UpdateCommissionRule("org-1", &domain.CommissionRule{
			Type: domain.CommissionRuleTiered,
			Tiers: []domain.CommissionTier{
				{Min: 0, Max: float64Ptr(1000), Percent: 5},
				{Min: 500, Max: float64Ptr(2000), Percent: 7},
			},
		})
		assert.Error(t, err)
	})

	t.Run("faixas encostadas na fronteira são aceitas", func(t *testing.T) {
		service, organizationRepo := newService(t)

		rule := &domain.CommissionRule{
			Type: domain.CommissionRuleTiered,
			Tiers: []domain.CommissionTier{
				{Min: 0, Max: float64Ptr(1000), Percent: 5},
				{Min: 1000, Max: nil, Percent: 7},
			},
		}
		organizationRepo.EXPECT().UpdateCommissionRule("org-1", rule).Return(nil)

		err := service.UpdateCommissionRule("org-1", rule)
		assert.NoError(t, err)
	})

	t.Run("duas faixas abertas são rejeitadas", func(t *testing.T) {
		service, _ := newService(t)

		err := service.UpdateCommissionRule("org-1", &domain.CommissionRule{
			Type: domain.CommissionRuleTiered,
			Tiers: []domain.CommissionTier{
				{Min: 0, Max: nil, Percent: 5},
				{Min: 5000, Max: nil, Percent: 7},
			},
		})
		assert.Error(t, err)
	})
}

func TestUpdateTaxDeductionRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	organizationRepo := mocks.NewMockOrganizationRepository(ctrl)
	saleRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(organizationRepo, saleRepo)

	t.Run("taxa válida é gravada", func(t *testing.T) {
		organizationRepo.EXPECT().UpdateTaxDeductionRate("org-1", float64Ptr(12.5)).Return(nil)

		err := service.UpdateTaxDeductionRate("org-1", float64Ptr(12.5))
		assert.NoError(t, err)
	})

	t.Run("taxa negativa é rejeitada", func(t *testing.T) {
		err := service.UpdateTaxDeductionRate("org-1", float64Ptr(-1))
		assert.Error(t, err)
	})

	t.Run("taxa acima de 100 é rejeitada", func(t *testing.T) {
		err := service.UpdateTaxDeductionRate("org-1", float64Ptr(100.01))
		assert.Error(t, err)
	})
}
