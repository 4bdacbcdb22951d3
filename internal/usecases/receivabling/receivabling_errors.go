package receivabling

import "errors"

// Erros específicos do contexto de recebíveis
var (
	ErrSaleNotFound       = errors.New("venda não encontrada")
	ErrReceivableNotFound = errors.New("parcela não encontrada")
	ErrAlreadyReceived    = errors.New("parcela já marcada como recebida")
	ErrNotReceived        = errors.New("parcela ainda não foi recebida")
)
