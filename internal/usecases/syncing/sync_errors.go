package syncing

import (
	"errors"
	"fmt"
)

// Erros específicos do contexto de sincronização. Falhas de autorização
// chegam da camada de integração (pipedrive.ErrIntegrationNotFound e
// pipedrive.ErrIntegrationAuth); aqui ficam as falhas das etapas seguintes.
var (
	// ErrFetch indica falha ao buscar os deals na origem; nada foi escrito
	ErrFetch = errors.New("erro ao buscar os deals na origem")

	// ErrInsert indica falha na gravação do lote; a próxima execução
	// reimporta os mesmos deals de forma idempotente
	ErrInsert = errors.New("erro ao gravar o lote de vendas sincronizadas")
)

// SyncError agrega o erro base com o código esperado pela camada de API
type SyncError struct {
	Err            error
	Code           string
	OrganizationID string
	Details        string
}

func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(err error, code, organizationID, details string) *SyncError {
	return &SyncError{
		Err:            err,
		Code:           code,
		OrganizationID: organizationID,
		Details:        details,
	}
}
