package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/rgoulart/commission-tracker-api/infrastructure/database/postgres"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
)

const credentialsTable = "integration_credentials"

type CredentialRepository interface {
	GetByOrganizationAndProvider(organizationID, provider string) (*domain.Credential, error)
	ListByProvider(provider string) ([]*domain.Credential, error)
	Upsert(credential *domain.Credential) (*domain.Credential, error)
	UpdateTokens(id, accessToken, refreshToken string, expiresAt time.Time, accountDomain *string) error
	UpdateLastSyncedAt(id string, syncedAt time.Time) error
	Delete(organizationID, provider string) error
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetByOrganizationAndProvider(organizationID, provider string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select("id", "organization_id", "provider", "account_domain", "access_token", "refresh_token", "expires_at", "last_synced_at", "created_at", "updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"organization_id": organizationID, "provider": provider}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	credential, err := r.deserialize(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return credential, nil
}

// ListByProvider lista as credenciais de todas as organizações conectadas ao
// provedor. Usado pelo agendador de sincronização.
func (r *credentialRepository) ListByProvider(provider string) ([]*domain.Credential, error) {
	query, args, err := squirrel.
		Select("id", "organization_id", "provider", "account_domain", "access_token", "refresh_token", "expires_at", "last_synced_at", "created_at", "updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"provider": provider}).
		OrderBy("organization_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	credentials := make([]*domain.Credential, 0)
	for rows.Next() {
		var credential domain.Credential
		if err := rows.Scan(
			&credential.ID,
			&credential.OrganizationID,
			&credential.Provider,
			&credential.AccountDomain,
			&credential.AccessToken,
			&credential.RefreshToken,
			&credential.ExpiresAt,
			&credential.LastSyncedAt,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		); err != nil {
			return nil, err
		}

		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credentials, nil
}

// Upsert insere a credencial ou, se a organização já está conectada ao
// provedor, substitui os tokens. Reconectar nunca duplica a credencial.
func (r *credentialRepository) Upsert(credential *domain.Credential) (*domain.Credential, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert(credentialsTable).
		Columns("id", "organization_id", "provider", "account_domain", "access_token", "refresh_token", "expires_at").
		Values(
			credential.ID,
			credential.OrganizationID,
			credential.Provider,
			credential.AccountDomain,
			credential.AccessToken,
			credential.RefreshToken,
			credential.ExpiresAt,
		).
		Suffix(`
			ON CONFLICT (organization_id, provider) DO UPDATE SET
				account_domain = EXCLUDED.account_domain,
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id string
	if err := r.conn.QueryRow(query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	credential.ID = id
	return credential, nil
}

func (r *credentialRepository) UpdateTokens(id, accessToken, refreshToken string, expiresAt time.Time, accountDomain *string) error {
	queryBuilder := squirrel.
		Update(credentialsTable).
		Set("access_token", accessToken).
		Set("refresh_token", refreshToken).
		Set("expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if accountDomain != nil {
		queryBuilder = queryBuilder.Set("account_domain", *accountDomain)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar as linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("credencial não encontrada: %s", id)
	}

	return nil
}

func (r *credentialRepository) UpdateLastSyncedAt(id string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Update(credentialsTable).
		Set("last_synced_at", syncedAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *credentialRepository) Delete(organizationID, provider string) error {
	query, args, err := squirrel.
		Delete(credentialsTable).
		Where(squirrel.Eq{"organization_id": organizationID, "provider": provider}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *credentialRepository) deserialize(row *sql.Row) (*domain.Credential, error) {
	credential := &domain.Credential{}

	if err := row.Scan(
		&credential.ID,
		&credential.OrganizationID,
		&credential.Provider,
		&credential.AccountDomain,
		&credential.AccessToken,
		&credential.RefreshToken,
		&credential.ExpiresAt,
		&credential.LastSyncedAt,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return credential, nil
}
