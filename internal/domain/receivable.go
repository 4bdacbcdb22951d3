package domain

import "time"

type ReceivableStatus string

const (
	ReceivableStatusPending  ReceivableStatus = "pending"
	ReceivableStatusReceived ReceivableStatus = "received"
)

// Receivable é uma parcela do plano de recebimento de uma venda.
// ExpectedAmount é a fatia de comissão da parcela; InstallmentValue é a
// fatia do valor bruto.
type Receivable struct {
	ID               string           `json:"id"`
	SaleID           string           `json:"sale_id"`
	SupplierID       *string          `json:"supplier_id,omitempty"`
	DueDate          time.Time        `json:"due_date"`
	ExpectedAmount   float64          `json:"expected_amount"`
	InstallmentValue float64          `json:"installment_value"`
	ReceivedAmount   *float64         `json:"received_amount,omitempty"`
	Status           ReceivableStatus `json:"status"`
	ReceivedAt       *time.Time       `json:"received_at,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ReceivablesStats resume os recebíveis por situação para o dashboard de
// fluxo de caixa
type ReceivablesStats struct {
	TotalPending  float64 `json:"total_pending"`
	TotalOverdue  float64 `json:"total_overdue"`
	TotalReceived float64 `json:"total_received"`
	CountPending  int     `json:"count_pending"`
	CountOverdue  int     `json:"count_overdue"`
	CountReceived int     `json:"count_received"`
}
