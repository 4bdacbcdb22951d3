package commissioning

import (
	"testing"

	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func TestApplyTaxDeduction(t *testing.T) {
	tests := []struct {
		name     string
		gross    float64
		rate     float64
		expected float64
	}{
		{
			name:     "dedução de 10%",
			gross:    1000,
			rate:     10,
			expected: 900,
		},
		{
			name:     "taxa zero mantém o valor bruto",
			gross:    1234.56,
			rate:     0,
			expected: 1234.56,
		},
		{
			name:     "resultado arredondado para 2 casas",
			gross:    100,
			rate:     3.333,
			expected: 96.67,
		},
		{
			name:     "taxa de 100% zera o líquido",
			gross:    500,
			rate:     100,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyTaxDeduction(tt.gross, tt.rate))
		})
	}
}

func TestCommission(t *testing.T) {
	tieredRule := &domain.CommissionRule{
		Type: domain.CommissionRuleTiered,
		Tiers: []domain.CommissionTier{
			{Min: 0, Max: float64Ptr(1000), Percent: 5},
			{Min: 1000, Max: float64Ptr(5000), Percent: 7},
			{Min: 5000, Max: nil, Percent: 10},
		},
	}

	tests := []struct {
		name     string
		net      float64
		rule     *domain.CommissionRule
		expected float64
	}{
		{
			name:     "sem regra configurada a comissão é zero",
			net:      1000,
			rule:     nil,
			expected: 0,
		},
		{
			name:     "percentual fixo",
			net:      2000,
			rule:     &domain.CommissionRule{Type: domain.CommissionRuleFlat, Percent: 5},
			expected: 100,
		},
		{
			name:     "faixa inicial",
			net:      500,
			rule:     tieredRule,
			expected: 25,
		},
		{
			name:     "valor na fronteira cai na faixa de cima",
			net:      1000,
			rule:     tieredRule,
			expected: 70,
		},
		{
			name:     "faixa aberta sem limite superior",
			net:      10000,
			rule:     tieredRule,
			expected: 1000,
		},
		{
			name: "valor fora de todas as faixas",
			net:  50,
			rule: &domain.CommissionRule{
				Type:  domain.CommissionRuleTiered,
				Tiers: []domain.CommissionTier{{Min: 100, Max: float64Ptr(1000), Percent: 5}},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Commission(tt.net, tt.rule))
		})
	}
}

func TestComputeSaleValues(t *testing.T) {
	organization := &domain.Organization{
		ID:               "org-1",
		TaxDeductionRate: float64Ptr(10),
		CommissionRule:   &domain.CommissionRule{Type: domain.CommissionRuleFlat, Percent: 5},
	}

	net, commission := ComputeSaleValues(1000, organization)
	assert.Equal(t, 900.0, net)
	assert.Equal(t, 45.0, commission)

	// Organização sem política: líquido igual ao bruto, comissão zero
	bare := &domain.Organization{ID: "org-2"}
	net, commission = ComputeSaleValues(1000, bare)
	assert.Equal(t, 1000.0, net)
	assert.Equal(t, 0.0, commission)
}
