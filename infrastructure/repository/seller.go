package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/rgoulart/commission-tracker-api/infrastructure/database/postgres"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
)

const sellersTable = "sellers"

type SellerRepository interface {
	GetByID(id string) (*domain.Seller, error)
	ListByOrganization(organizationID string) ([]*domain.Seller, error)
	Create(seller *domain.Seller) (*domain.Seller, error)
	Update(seller *domain.Seller) error
	UpdateExternalOwner(id string, externalOwnerID *int64) error
}

type sellerRepository struct {
	conn *postgres.Connection
}

func NewSellerRepository(conn *postgres.Connection) SellerRepository {
	return &sellerRepository{
		conn: conn,
	}
}

func (r *sellerRepository) GetByID(id string) (*domain.Seller, error) {
	query, args, err := squirrel.
		Select("id", "organization_id", "name", "email", "external_owner_id", "active", "created_at", "updated_at").
		From(sellersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	seller := &domain.Seller{}
	err = r.conn.QueryRow(query, args...).Scan(
		&seller.ID,
		&seller.OrganizationID,
		&seller.Name,
		&seller.Email,
		&seller.ExternalOwnerID,
		&seller.Active,
		&seller.CreatedAt,
		&seller.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return seller, nil
}

func (r *sellerRepository) ListByOrganization(organizationID string) ([]*domain.Seller, error) {
	query, args, err := squirrel.
		Select("id", "organization_id", "name", "email", "external_owner_id", "active", "created_at", "updated_at").
		From(sellersTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("name ASC").
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

	sellers := make([]*domain.Seller, 0)
	for rows.Next() {
		var seller domain.Seller
		if err := rows.Scan(
			&seller.ID,
			&seller.OrganizationID,
			&seller.Name,
			&seller.Email,
			&seller.ExternalOwnerID,
			&seller.Active,
			&seller.CreatedAt,
			&seller.UpdatedAt,
		); err != nil {
			return nil, err
		}

		sellers = append(sellers, &seller)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sellers, nil
}

func (r *sellerRepository) Create(seller *domain.Seller) (*domain.Seller, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert(sellersTable).
		Columns("id", "organization_id", "name", "email", "external_owner_id", "active").
		Values(seller.ID, seller.OrganizationID, seller.Name, seller.Email, seller.ExternalOwnerID, seller.Active).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&seller.ID); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return seller, nil
}

func (r *sellerRepository) Update(seller *domain.Seller) error {
	if seller.ID == "" {
		return errors.New("o ID do vendedor é obrigatório")
	}

	queryBuilder := squirrel.
		Update(sellersTable).
		Set("active", seller.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": seller.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if seller.Name != "" {
		queryBuilder = queryBuilder.Set("name", seller.Name)
	}

	if seller.Email != nil && *seller.Email != "" {
		queryBuilder = queryBuilder.Set("email", seller.Email)
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
		return fmt.Errorf("vendedor não encontrado: %s", seller.ID)
	}

	return nil
}

// UpdateExternalOwner vincula (ou desvincula, com nil) o vendedor ao dono do
// deal no CRM
func (r *sellerRepository) UpdateExternalOwner(id string, externalOwnerID *int64) error {
	query, args, err := squirrel.
		Update(sellersTable).
		Set("external_owner_id", externalOwnerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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
		return fmt.Errorf("vendedor não encontrado: %s", id)
	}

	return nil
}
