package domain

import "time"

const (
	// ProviderPipedrive é o único provedor de CRM suportado atualmente
	ProviderPipedrive = "pipedrive"
)

// Credential armazena os tokens OAuth de uma integração de CRM.
// Existe no máximo uma credencial por par (organização, provedor).
type Credential struct {
	ID             string
	OrganizationID string
	Provider       string
	AccountDomain  *string
	AccessToken    string
	RefreshToken   string
	ExpiresAt      time.Time
	LastSyncedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
