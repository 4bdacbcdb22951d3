package selling

import (
	"context"
	"testing"
	"time"

	"github.com/rgoulart/commission-tracker-api/infrastructure/repository/mocks"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type sellingFixture struct {
	sellerRepo       *mocks.MockSellerRepository
	saleRepo         *mocks.MockSaleRepository
	receivableRepo   *mocks.MockReceivableRepository
	organizationRepo *mocks.MockOrganizationRepository
	service          Seller
}

func newSellingFixture(ctrl *gomock.Controller) *sellingFixture {
	f := &sellingFixture{
		sellerRepo:       mocks.NewMockSellerRepository(ctrl),
		saleRepo:         mocks.NewMockSaleRepository(ctrl),
		receivableRepo:   mocks.NewMockReceivableRepository(ctrl),
		organizationRepo: mocks.NewMockOrganizationRepository(ctrl),
	}

	f.service = NewService(f.sellerRepo, f.saleRepo, f.receivableRepo, f.organizationRepo)

	return f
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func testOrganization() *domain.Organization {
	return &domain.Organization{
		ID:               "org-1",
		TaxDeductionRate: float64Ptr(10),
		CommissionRule:   &domain.CommissionRule{Type: domain.CommissionRuleFlat, Percent: 5},
	}
}

func TestService_CreateSale(t *testing.T) {
	request := func() *CreateSaleRequest {
		return &CreateSaleRequest{
			OrganizationID:   "org-1",
			SellerID:         "seller-1",
			ClientName:       "Cliente Alfa",
			GrossValue:       1000,
			PaymentCondition: stringPtr("30/60"),
			SaleDate:         "2026-05-10",
		}
	}

	t.Run("venda válida deriva os valores e gera o plano", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSellingFixture(ctrl)

		f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
		f.sellerRepo.EXPECT().GetByID("seller-1").Return(&domain.Seller{
			ID:             "seller-1",
			OrganizationID: "org-1",
			Name:           "Ana",
			Active:         true,
		}, nil)

		f.saleRepo.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(sale *domain.Sale) (*domain.Sale, error) {
				assert.Equal(t, 1000.0, sale.GrossValue)
				assert.Equal(t, 900.0, sale.NetValue)
				assert.Equal(t, 45.0, sale.CommissionValue)
				assert.Equal(t, "2026-05-10", sale.SaleDate.Format(time.DateOnly))
				return sale, nil
			})

		f.receivableRepo.EXPECT().
			BatchInsert(gomock.Any()).
			DoAndReturn(func(receivables []*domain.Receivable) error {
				assert.Len(t, receivables, 2)
				return nil
			})

		sale, err := f.service.CreateSale(context.Background(), request())
		assert.NoError(t, err)
		assert.NotNil(t, sale)
	})

	t.Run("vendedor inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSellingFixture(ctrl)

		f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
		f.sellerRepo.EXPECT().GetByID("seller-1").Return(nil, nil)

		_, err := f.service.CreateSale(context.Background(), request())
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})

	t.Run("vendedor de outra organização", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSellingFixture(ctrl)

		f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
		f.sellerRepo.EXPECT().GetByID("seller-1").Return(&domain.Seller{
			ID:             "seller-1",
			OrganizationID: "org-2",
			Active:         true,
		}, nil)

		_, err := f.service.CreateSale(context.Background(), request())
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})

	t.Run("vendedor inativo é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSellingFixture(ctrl)

		f.organizationRepo.EXPECT().GetByID("org-1").Return(testOrganization(), nil)
		f.sellerRepo.EXPECT().GetByID("seller-1").Return(&domain.Seller{
			ID:             "seller-1",
			OrganizationID: "org-1",
			Name:           "Ana",
			Active:         false,
		}, nil)

		// Nenhuma venda pode ser registrada

		_, err := f.service.CreateSale(context.Background(), request())
		assert.ErrorIs(t, err, ErrSellerInactive)
	})
}
