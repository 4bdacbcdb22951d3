package domain

import "time"

// Seller representa um vendedor interno da organização.
// ExternalOwnerID vincula o vendedor ao dono do deal no CRM; pode ser nulo
// quando o vendedor ainda não foi mapeado.
type Seller struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	Name            string    `json:"name"`
	Email           *string   `json:"email,omitempty"`
	ExternalOwnerID *int64    `json:"external_owner_id"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
