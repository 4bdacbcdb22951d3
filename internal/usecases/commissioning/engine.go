package commissioning

import (
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/pkg/utils"
)

// Funções puras de cálculo fiscal e de comissão. Tudo aqui opera sobre
// valores já carregados; nenhuma função toca banco ou rede.

// ApplyTaxDeduction aplica a dedução fiscal da organização sobre o valor
// bruto. A validade da taxa (0-100) é garantida no cadastro, não aqui.
func ApplyTaxDeduction(grossValue, taxRatePercent float64) float64 {
	return utils.RoundWithTwoDecimalPlace(grossValue * (1 - taxRatePercent/100))
}

// Commission calcula a comissão sobre o valor líquido segundo a regra da
// organização. Sem regra configurada, a comissão é zero.
func Commission(netValue float64, rule *domain.CommissionRule) float64 {
	if rule == nil {
		return 0
	}

	switch rule.Type {
	case domain.CommissionRuleFlat:
		return utils.RoundWithTwoDecimalPlace(netValue * rule.Percent / 100)
	case domain.CommissionRuleTiered:
		for _, tier := range rule.Tiers {
			if tier.Contains(netValue) {
				return utils.RoundWithTwoDecimalPlace(netValue * tier.Percent / 100)
			}
		}
		// Valor fora de todas as faixas: sem comissão
		return 0
	default:
		return 0
	}
}

// ComputeSaleValues deriva o valor líquido e a comissão de uma venda a
// partir da política da organização
func ComputeSaleValues(grossValue float64, organization *domain.Organization) (netValue, commissionValue float64) {
	netValue = ApplyTaxDeduction(grossValue, organization.EffectiveTaxRate())
	commissionValue = Commission(netValue, organization.CommissionRule)
	return netValue, commissionValue
}
