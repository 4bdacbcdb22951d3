package domain

import "time"

// Organization agrupa vendedores, vendas e a política fiscal/comissão.
// TaxDeductionRate é um percentual (0-100); nulo equivale a zero.
type Organization struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TaxDeductionRate *float64        `json:"tax_deduction_rate"`
	CommissionRule   *CommissionRule `json:"commission_rule"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// EffectiveTaxRate resolve a taxa de dedução tratando o nulo como zero
func (o *Organization) EffectiveTaxRate() float64 {
	if o.TaxDeductionRate == nil {
		return 0
	}
	return *o.TaxDeductionRate
}
