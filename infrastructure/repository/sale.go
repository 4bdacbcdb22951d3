package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/rgoulart/commission-tracker-api/infrastructure/database/postgres"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
)

const salesTable = "sales"

const saleColumns = "id, organization_id, seller_id, external_deal_id, integration_id, client_name, gross_value, net_value, commission_value, payment_condition, sale_date, source_deleted_at, created_at, updated_at"

type SaleRepository interface {
	GetByID(id string) (*domain.Sale, error)
	ListByOrganization(organizationID string, from, to *time.Time) ([]*domain.Sale, error)
	ListCRMRefs(organizationID string) ([]*domain.SaleRef, error)
	Create(sale *domain.Sale) (*domain.Sale, error)
	BatchInsertWithReceivables(ctx context.Context, sales []*domain.Sale, receivables []*domain.Receivable) error
	MarkSourceDeleted(organizationID string, externalDealIDs []string, deletedAt time.Time) (int64, error)
	ClearSourceDeleted(organizationID string, externalDealIDs []string) (int64, error)
	UpdateValues(id string, netValue, commissionValue float64) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) GetByID(id string) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns).
		From(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sale := &domain.Sale{}
	err = r.conn.QueryRow(query, args...).Scan(
		&sale.ID,
		&sale.OrganizationID,
		&sale.SellerID,
		&sale.ExternalDealID,
		&sale.IntegrationID,
		&sale.ClientName,
		&sale.GrossValue,
		&sale.NetValue,
		&sale.CommissionValue,
		&sale.PaymentCondition,
		&sale.SaleDate,
		&sale.SourceDeletedAt,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) ListByOrganization(organizationID string, from, to *time.Time) ([]*domain.Sale, error) {
	queryBuilder := squirrel.
		Select(saleColumns).
		From(salesTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("sale_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	if from != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"sale_date": *from})
	}

	if to != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"sale_date": *to})
	}

	query, args, err := queryBuilder.ToSql()
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

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := r.deserialize(rows)
		if err != nil {
			return nil, err
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}

// ListCRMRefs devolve a projeção mínima das vendas importadas do CRM,
// usada pelo diff da sincronização. Só vendas com external_deal_id entram.
func (r *saleRepository) ListCRMRefs(organizationID string) ([]*domain.SaleRef, error) {
	query, args, err := squirrel.
		Select("id", "external_deal_id", "source_deleted_at").
		From(salesTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.NotEq{"external_deal_id": nil}).
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

	refs := make([]*domain.SaleRef, 0)
	for rows.Next() {
		var ref domain.SaleRef
		if err := rows.Scan(&ref.ID, &ref.ExternalDealID, &ref.SourceDeletedAt); err != nil {
			return nil, err
		}

		refs = append(refs, &ref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

func (r *saleRepository) Create(sale *domain.Sale) (*domain.Sale, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert(salesTable).
		Columns("id", "organization_id", "seller_id", "external_deal_id", "integration_id", "client_name", "gross_value", "net_value", "commission_value", "payment_condition", "sale_date").
		Values(
			sale.ID,
			sale.OrganizationID,
			sale.SellerID,
			sale.ExternalDealID,
			sale.IntegrationID,
			sale.ClientName,
			sale.GrossValue,
			sale.NetValue,
			sale.CommissionValue,
			sale.PaymentCondition,
			sale.SaleDate,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&sale.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro de banco: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return sale, nil
}

// BatchInsertWithReceivables insere as vendas e as parcelas do lote em uma
// única transação. Ou o lote inteiro entra, ou nada entra: uma falha na
// gravação das parcelas desfaz as vendas, e a próxima sincronização reimporta
// os mesmos deals. O conflito por (organization_id, integration_id,
// external_deal_id) é ignorado: um deal já importado pela mesma integração
// nunca é sobrescrito.
func (r *saleRepository) BatchInsertWithReceivables(ctx context.Context, sales []*domain.Sale, receivables []*domain.Receivable) error {
	if len(sales) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		salesQuery, salesArgs, err := buildSalesInsert(sales)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(salesQuery, salesArgs...); err != nil {
			return fmt.Errorf("erro ao inserir as vendas: %w", err)
		}

		if len(receivables) == 0 {
			return nil
		}

		receivablesQuery, receivablesArgs, err := buildReceivablesInsert(receivables)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(receivablesQuery, receivablesArgs...); err != nil {
			return fmt.Errorf("erro ao inserir as parcelas: %w", err)
		}

		return nil
	})
}

func buildSalesInsert(sales []*domain.Sale) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.
		Insert(salesTable).
		Columns("id", "organization_id", "seller_id", "external_deal_id", "integration_id", "client_name", "gross_value", "net_value", "commission_value", "payment_condition", "sale_date").
		PlaceholderFormat(squirrel.Dollar)

	for _, sale := range sales {
		query = query.Values(
			sale.ID,
			sale.OrganizationID,
			sale.SellerID,
			sale.ExternalDealID,
			sale.IntegrationID,
			sale.ClientName,
			sale.GrossValue,
			sale.NetValue,
			sale.CommissionValue,
			sale.PaymentCondition,
			sale.SaleDate,
		)
	}

	query = query.Suffix("ON CONFLICT (organization_id, integration_id, external_deal_id) DO NOTHING")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return sqlQuery, args, nil
}

// MarkSourceDeleted marca o tombstone das vendas cujos deals sumiram do CRM.
// Vendas já marcadas não são tocadas, preservando o timestamp original.
func (r *saleRepository) MarkSourceDeleted(organizationID string, externalDealIDs []string, deletedAt time.Time) (int64, error) {
	if len(externalDealIDs) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Update(salesTable).
		Set("source_deleted_at", deletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"external_deal_id": externalDealIDs}).
		Where(squirrel.Eq{"source_deleted_at": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}

// ClearSourceDeleted restaura vendas cujo deal voltou a aparecer na origem
func (r *saleRepository) ClearSourceDeleted(organizationID string, externalDealIDs []string) (int64, error) {
	if len(externalDealIDs) == 0 {
		return 0, nil
	}

	query, args, err := squirrel.
		Update(salesTable).
		Set("source_deleted_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"organization_id": organizationID}).
		Where(squirrel.Eq{"external_deal_id": externalDealIDs}).
		Where(squirrel.NotEq{"source_deleted_at": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}

// UpdateValues atualiza os valores derivados da venda após o recálculo de
// comissão e dedução fiscal
func (r *saleRepository) UpdateValues(id string, netValue, commissionValue float64) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("net_value", netValue).
		Set("commission_value", commissionValue).
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
		return fmt.Errorf("venda não encontrada: %s", id)
	}

	return nil
}

func (r *saleRepository) deserialize(rows *sql.Rows) (*domain.Sale, error) {
	sale := &domain.Sale{}

	if err := rows.Scan(
		&sale.ID,
		&sale.OrganizationID,
		&sale.SellerID,
		&sale.ExternalDealID,
		&sale.IntegrationID,
		&sale.ClientName,
		&sale.GrossValue,
		&sale.NetValue,
		&sale.CommissionValue,
		&sale.PaymentCondition,
		&sale.SaleDate,
		&sale.SourceDeletedAt,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return sale, nil
}
