package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/rgoulart/commission-tracker-api/infrastructure/database/postgres"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
)

const organizationsTable = "organizations"

type OrganizationRepository interface {
	GetByID(id string) (*domain.Organization, error)
	Create(organization *domain.Organization) (*domain.Organization, error)
	UpdateTaxDeductionRate(id string, rate *float64) error
	UpdateCommissionRule(id string, rule *domain.CommissionRule) error
}

type organizationRepository struct {
	conn *postgres.Connection
}

func NewOrganizationRepository(conn *postgres.Connection) OrganizationRepository {
	return &organizationRepository{
		conn: conn,
	}
}

func (r *organizationRepository) GetByID(id string) (*domain.Organization, error) {
	query, args, err := squirrel.
		Select("id", "name", "tax_deduction_rate", "commission_rule", "created_at", "updated_at").
		From(organizationsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	organization := &domain.Organization{}
	var ruleJSON []byte

	err = r.conn.QueryRow(query, args...).Scan(
		&organization.ID,
		&organization.Name,
		&organization.TaxDeductionRate,
		&ruleJSON,
		&organization.CreatedAt,
		&organization.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	// A regra de comissão fica em uma coluna JSONB; nulo significa que a
	// organização ainda não configurou comissão
	if ruleJSON != nil {
		rule := &domain.CommissionRule{}
		if err := json.Unmarshal(ruleJSON, rule); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a regra de comissão: %w", err)
		}
		organization.CommissionRule = rule
	}

	return organization, nil
}

func (r *organizationRepository) Create(organization *domain.Organization) (*domain.Organization, error) {
	ruleJSON, err := marshalCommissionRule(organization.CommissionRule)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(organizationsTable).
		Columns("id", "name", "tax_deduction_rate", "commission_rule").
		Values(organization.ID, organization.Name, organization.TaxDeductionRate, ruleJSON).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&organization.ID); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return organization, nil
}

func (r *organizationRepository) UpdateTaxDeductionRate(id string, rate *float64) error {
	query, args, err := squirrel.
		Update(organizationsTable).
		Set("tax_deduction_rate", rate).
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
		return fmt.Errorf("organização não encontrada: %s", id)
	}

	return nil
}

func (r *organizationRepository) UpdateCommissionRule(id string, rule *domain.CommissionRule) error {
	ruleJSON, err := marshalCommissionRule(rule)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update(organizationsTable).
		Set("commission_rule", ruleJSON).
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
		return fmt.Errorf("organização não encontrada: %s", id)
	}

	return nil
}

func marshalCommissionRule(rule *domain.CommissionRule) ([]byte, error) {
	if rule == nil {
		return nil, nil
	}

	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a regra de comissão: %w", err)
	}

	return ruleJSON, nil
}
