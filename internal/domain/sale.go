package domain

import "time"

// Sale representa uma venda do ledger interno.
// Vendas importadas do CRM carregam ExternalDealID e IntegrationID; vendas
// manuais deixam os dois nulos.
//
// SourceDeletedAt é um tombstone: marca que o deal sumiu do CRM na última
// sincronização, sem apagar a venda localmente.
type Sale struct {
	ID               string     `json:"id"`
	OrganizationID   string     `json:"organization_id"`
	SellerID         string     `json:"seller_id"`
	ExternalDealID   *string    `json:"external_deal_id,omitempty"`
	IntegrationID    *string    `json:"integration_id,omitempty"`
	ClientName       string     `json:"client_name"`
	GrossValue       float64    `json:"gross_value"`
	NetValue         float64    `json:"net_value"`
	CommissionValue  float64    `json:"commission_value"`
	PaymentCondition *string    `json:"payment_condition,omitempty"`
	SaleDate         time.Time  `json:"sale_date"`
	SourceDeletedAt  *time.Time `json:"source_deleted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// FromCRM indica se a venda foi importada de um CRM externo
func (s *Sale) FromCRM() bool {
	return s.ExternalDealID != nil && s.IntegrationID != nil
}

// Tombstoned indica se a venda foi marcada como removida na origem
func (s *Sale) Tombstoned() bool {
	return s.SourceDeletedAt != nil
}

// SaleRef é a projeção mínima usada pelo diff da sincronização
type SaleRef struct {
	ID              string
	ExternalDealID  string
	SourceDeletedAt *time.Time
}
