package receivabling

import (
	"context"
	"testing"
	"time"

	"github.com/rgoulart/commission-tracker-api/infrastructure/repository/mocks"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name      string
		condition *string
		expected  []int
	}{
		{
			name:      "três parcelas na ordem escrita",
			condition: stringPtr("30/60/90"),
			expected:  []int{30, 60, 90},
		},
		{
			name:      "parcela única",
			condition: stringPtr("45"),
			expected:  []int{45},
		},
		{
			name:      "condição nula vira venda à vista",
			condition: nil,
			expected:  []int{0},
		},
		{
			name:      "condição vazia vira venda à vista",
			condition: stringPtr("  "),
			expected:  []int{0},
		},
		{
			name:      "parte ilegível é descartada e as válidas permanecem",
			condition: stringPtr("30/abc/90"),
			expected:  []int{30, 90},
		},
		{
			name:      "offset negativo é descartado",
			condition: stringPtr("30/-60"),
			expected:  []int{30},
		},
		{
			name:      "condição sem nenhuma parte válida vira venda à vista",
			condition: stringPtr("abc/-10/x"),
			expected:  []int{0},
		},
		{
			name:      "ordem fora da cronológica é preservada",
			condition: stringPtr("90/30/60"),
			expected:  []int{90, 30, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCondition(tt.condition))
		})
	}
}

func TestBuildSchedule(t *testing.T) {
	saleDate := time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)

	t.Run("parcelamento em três com divisão igual", func(t *testing.T) {
		sale := &domain.Sale{
			ID:               "sale-1",
			GrossValue:       3000,
			CommissionValue:  150,
			PaymentCondition: stringPtr("30/60/90"),
			SaleDate:         saleDate,
		}

		receivables, err := BuildSchedule(sale)
		assert.NoError(t, err)
		assert.Len(t, receivables, 3)

		// Âncora ao meio-dia: o dia do calendário não desloca mesmo com a
		// venda registrada no fim do dia
		assert.Equal(t, "2026-02-14", receivables[0].DueDate.Format(time.DateOnly))
		assert.Equal(t, "2026-03-16", receivables[1].DueDate.Format(time.DateOnly))
		assert.Equal(t, "2026-04-15", receivables[2].DueDate.Format(time.DateOnly))

		for _, receivable := range receivables {
			assert.Equal(t, 1000.0, receivable.InstallmentValue)
			assert.Equal(t, 50.0, receivable.ExpectedAmount)
			assert.Equal(t, domain.ReceivableStatusPending, receivable.Status)
			assert.Equal(t, "sale-1", receivable.SaleID)
		}
	})

	t.Run("venda à vista gera parcela única no dia da venda", func(t *testing.T) {
		sale := &domain.Sale{
			ID:              "sale-2",
			GrossValue:      500,
			CommissionValue: 25,
			SaleDate:        saleDate,
		}

		receivables, err := BuildSchedule(sale)
		assert.NoError(t, err)
		assert.Len(t, receivables, 1)
		assert.Equal(t, "2026-01-15", receivables[0].DueDate.Format(time.DateOnly))
		assert.Equal(t, 500.0, receivables[0].InstallmentValue)
		assert.Equal(t, 25.0, receivables[0].ExpectedAmount)
	})

	t.Run("sobra de centavos da divisão é tolerada", func(t *testing.T) {
		sale := &domain.Sale{
			ID:               "sale-3",
			GrossValue:       100,
			CommissionValue:  10,
			PaymentCondition: stringPtr("30/60/90"),
			SaleDate:         saleDate,
		}

		receivables, err := BuildSchedule(sale)
		assert.NoError(t, err)
		assert.Len(t, receivables, 3)

		var total float64
		for _, receivable := range receivables {
			assert.Equal(t, 33.33, receivable.InstallmentValue)
			total += receivable.InstallmentValue
		}

		// 3 × 33,33 = 99,99: um centavo de diferença é aceito
		assert.InDelta(t, sale.GrossValue, total, 0.011)
	})
}

func TestService_Regenerate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	receivableRepo := mocks.NewMockReceivableRepository(ctrl)

	sale := &domain.Sale{
		ID:               "sale-1",
		GrossValue:       2000,
		CommissionValue:  100,
		PaymentCondition: stringPtr("30/60"),
		SaleDate:         time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	saleRepo.EXPECT().GetByID("sale-1").Return(sale, nil)
	receivableRepo.EXPECT().
		Replace(gomock.Any(), "sale-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, receivables []*domain.Receivable) error {
			assert.Len(t, receivables, 2)
			assert.Equal(t, 1000.0, receivables[0].InstallmentValue)
			assert.Equal(t, 50.0, receivables[0].ExpectedAmount)
			return nil
		})

	service := NewService(saleRepo, receivableRepo)

	receivables, err := service.Regenerate(context.Background(), "sale-1")
	assert.NoError(t, err)
	assert.Len(t, receivables, 2)
}

func TestService_Regenerate_SaleNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	receivableRepo := mocks.NewMockReceivableRepository(ctrl)

	saleRepo.EXPECT().GetByID("missing").Return(nil, nil)

	service := NewService(saleRepo, receivableRepo)

	_, err := service.Regenerate(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestService_MarkReceived(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	t.Run("sem valor informado assume o esperado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		receivableRepo := mocks.NewMockReceivableRepository(ctrl)

		receivableRepo.EXPECT().GetByID("rec-1").Return(&domain.Receivable{
			ID:             "rec-1",
			ExpectedAmount: 50,
			Status:         domain.ReceivableStatusPending,
		}, nil)
		receivableRepo.EXPECT().MarkReceived("rec-1", 50.0, now, nil).Return(nil)

		service := NewService(saleRepo, receivableRepo).WithClock(func() time.Time { return now })

		err := service.MarkReceived("rec-1", nil, nil)
		assert.NoError(t, err)
	})

	t.Run("valor informado prevalece", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		receivableRepo := mocks.NewMockReceivableRepository(ctrl)

		receivableRepo.EXPECT().GetByID("rec-1").Return(&domain.Receivable{
			ID:             "rec-1",
			ExpectedAmount: 50,
			Status:         domain.ReceivableStatusPending,
		}, nil)
		receivableRepo.EXPECT().MarkReceived("rec-1", 47.5, now, nil).Return(nil)

		service := NewService(saleRepo, receivableRepo).WithClock(func() time.Time { return now })

		err := service.MarkReceived("rec-1", float64Ptr(47.5), nil)
		assert.NoError(t, err)
	})

	t.Run("parcela já recebida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		receivableRepo := mocks.NewMockReceivableRepository(ctrl)

		receivableRepo.EXPECT().GetByID("rec-1").Return(&domain.Receivable{
			ID:     "rec-1",
			Status: domain.ReceivableStatusReceived,
		}, nil)

		service := NewService(saleRepo, receivableRepo)

		err := service.MarkReceived("rec-1", nil, nil)
		assert.ErrorIs(t, err, ErrAlreadyReceived)
	})
}

func TestService_UndoReceived(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	receivableRepo := mocks.NewMockReceivableRepository(ctrl)

	receivableRepo.EXPECT().GetByID("rec-1").Return(&domain.Receivable{
		ID:     "rec-1",
		Status: domain.ReceivableStatusPending,
	}, nil)

	service := NewService(saleRepo, receivableRepo)

	err := service.UndoReceived("rec-1")
	assert.ErrorIs(t, err, ErrNotReceived)
}
