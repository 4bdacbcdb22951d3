package domain

type CommissionRuleType string

const (
	CommissionRuleFlat   CommissionRuleType = "flat"
	CommissionRuleTiered CommissionRuleType = "tiered"
)

// CommissionRule define como a comissão é calculada sobre o valor líquido.
// Regras "flat" aplicam um percentual único; regras "tiered" escolhem a faixa
// cujo intervalo [Min, Max) contém o valor líquido.
//
// As faixas devem ser não sobrepostas; essa validação acontece no cadastro da
// regra, não no cálculo.
type CommissionRule struct {
	Type    CommissionRuleType `json:"type"`
	Percent float64            `json:"percent,omitempty"`
	Tiers   []CommissionTier   `json:"tiers,omitempty"`
}

// CommissionTier é uma faixa de uma regra escalonada. Max nulo significa
// faixa aberta (sem limite superior).
type CommissionTier struct {
	Min     float64  `json:"min"`
	Max     *float64 `json:"max,omitempty"`
	Percent float64  `json:"percent"`
}

// Contains verifica se o valor cai dentro da faixa. O limite inferior é
// inclusivo e o superior exclusivo, então um valor exatamente na fronteira
// pertence à faixa de cima.
func (t CommissionTier) Contains(value float64) bool {
	if value < t.Min {
		return false
	}
	if t.Max == nil {
		return true
	}
	return value < *t.Max
}
