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

const receivablesTable = "receivables"

const receivableColumns = "id, sale_id, supplier_id, due_date, expected_amount, installment_value, received_amount, status, received_at, notes, created_at"

type ReceivableRepository interface {
	GetByID(id string) (*domain.Receivable, error)
	ListBySale(saleID string) ([]*domain.Receivable, error)
	ListByOrganization(organizationID string, from, to *time.Time, status *domain.ReceivableStatus) ([]*domain.Receivable, error)
	BatchInsert(receivables []*domain.Receivable) error
	Replace(ctx context.Context, saleID string, receivables []*domain.Receivable) error
	DeleteBySale(saleID string) error
	MarkReceived(id string, receivedAmount float64, receivedAt time.Time, notes *string) error
	UndoReceived(id string) error
	Stats(organizationID string, from, to time.Time) (*domain.ReceivablesStats, error)
}

type receivableRepository struct {
	conn *postgres.Connection
}

func NewReceivableRepository(conn *postgres.Connection) ReceivableRepository {
	return &receivableRepository{
		conn: conn,
	}
}

func (r *receivableRepository) GetByID(id string) (*domain.Receivable, error) {
	query, args, err := squirrel.
		Select(receivableColumns).
		From(receivablesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	receivable := &domain.Receivable{}
	err = r.conn.QueryRow(query, args...).Scan(
		&receivable.ID,
		&receivable.SaleID,
		&receivable.SupplierID,
		&receivable.DueDate,
		&receivable.ExpectedAmount,
		&receivable.InstallmentValue,
		&receivable.ReceivedAmount,
		&receivable.Status,
		&receivable.ReceivedAt,
		&receivable.Notes,
		&receivable.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return receivable, nil
}

func (r *receivableRepository) ListBySale(saleID string) ([]*domain.Receivable, error) {
	query, args, err := squirrel.
		Select(receivableColumns).
		From(receivablesTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("due_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(query, args)
}

// ListByOrganization lista os recebíveis das vendas da organização,
// opcionalmente filtrados por vencimento e situação
func (r *receivableRepository) ListByOrganization(organizationID string, from, to *time.Time, status *domain.ReceivableStatus) ([]*domain.Receivable, error) {
	queryBuilder := squirrel.
		Select("r.id, r.sale_id, r.supplier_id, r.due_date, r.expected_amount, r.installment_value, r.received_amount, r.status, r.received_at, r.notes, r.created_at").
		From("receivables r").
		Join("sales s ON r.sale_id = s.id").
		Where(squirrel.Eq{"s.organization_id": organizationID}).
		OrderBy("r.due_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if from != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"r.due_date": *from})
	}

	if to != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"r.due_date": *to})
	}

	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.status": *status})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(query, args)
}

func (r *receivableRepository) BatchInsert(receivables []*domain.Receivable) error {
	if len(receivables) == 0 {
		return nil
	}

	query, args, err := buildReceivablesInsert(receivables)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro de banco: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Replace apaga o plano de recebimento atual da venda e insere o novo, em
// uma única transação. Ou o plano inteiro troca, ou nada muda.
func (r *receivableRepository) Replace(ctx context.Context, saleID string, receivables []*domain.Receivable) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteQuery, deleteArgs, err := squirrel.
			Delete(receivablesTable).
			Where(squirrel.Eq{"sale_id": saleID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de remoção: %w", err)
		}

		if _, err := tx.Exec(deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("erro ao remover o plano atual: %w", err)
		}

		if len(receivables) == 0 {
			return nil
		}

		insertQuery, insertArgs, err := buildReceivablesInsert(receivables)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("erro ao inserir o novo plano: %w", err)
		}

		return nil
	})
}

func (r *receivableRepository) DeleteBySale(saleID string) error {
	query, args, err := squirrel.
		Delete(receivablesTable).
		Where(squirrel.Eq{"sale_id": saleID}).
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

// MarkReceived registra o recebimento da parcela. Só parcelas pendentes
// podem ser marcadas; marcar de novo é um erro.
func (r *receivableRepository) MarkReceived(id string, receivedAmount float64, receivedAt time.Time, notes *string) error {
	queryBuilder := squirrel.
		Update(receivablesTable).
		Set("status", domain.ReceivableStatusReceived).
		Set("received_amount", receivedAmount).
		Set("received_at", receivedAt).
		Where(squirrel.Eq{"id": id, "status": domain.ReceivableStatusPending}).
		PlaceholderFormat(squirrel.Dollar)

	if notes != nil {
		queryBuilder = queryBuilder.Set("notes", *notes)
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
		return fmt.Errorf("parcela não encontrada ou já recebida: %s", id)
	}

	return nil
}

// UndoReceived desfaz o recebimento, voltando a parcela para pendente
func (r *receivableRepository) UndoReceived(id string) error {
	query, args, err := squirrel.
		Update(receivablesTable).
		Set("status", domain.ReceivableStatusPending).
		Set("received_amount", nil).
		Set("received_at", nil).
		Where(squirrel.Eq{"id": id, "status": domain.ReceivableStatusReceived}).
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
		return fmt.Errorf("parcela não encontrada ou ainda pendente: %s", id)
	}

	return nil
}

// Stats agrega os recebíveis da organização no período por situação.
// Parcelas pendentes com vencimento anterior a hoje contam como atrasadas.
func (r *receivableRepository) Stats(organizationID string, from, to time.Time) (*domain.ReceivablesStats, error) {
	query, args, err := squirrel.
		Select(
			"COALESCE(SUM(r.expected_amount) FILTER (WHERE r.status = 'pending' AND r.due_date >= CURRENT_DATE), 0)",
			"COALESCE(SUM(r.expected_amount) FILTER (WHERE r.status = 'pending' AND r.due_date < CURRENT_DATE), 0)",
			"COALESCE(SUM(COALESCE(r.received_amount, r.expected_amount)) FILTER (WHERE r.status = 'received'), 0)",
			"COUNT(*) FILTER (WHERE r.status = 'pending' AND r.due_date >= CURRENT_DATE)",
			"COUNT(*) FILTER (WHERE r.status = 'pending' AND r.due_date < CURRENT_DATE)",
			"COUNT(*) FILTER (WHERE r.status = 'received')",
		).
		From("receivables r").
		Join("sales s ON r.sale_id = s.id").
		Where(squirrel.Eq{"s.organization_id": organizationID}).
		Where(squirrel.GtOrEq{"r.due_date": from}).
		Where(squirrel.LtOrEq{"r.due_date": to}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	stats := &domain.ReceivablesStats{}
	err = r.conn.QueryRow(query, args...).Scan(
		&stats.TotalPending,
		&stats.TotalOverdue,
		&stats.TotalReceived,
		&stats.CountPending,
		&stats.CountOverdue,
		&stats.CountReceived,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return stats, nil
}

func (r *receivableRepository) list(query string, args []interface{}) ([]*domain.Receivable, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	receivables := make([]*domain.Receivable, 0)
	for rows.Next() {
		var receivable domain.Receivable
		if err := rows.Scan(
			&receivable.ID,
			&receivable.SaleID,
			&receivable.SupplierID,
			&receivable.DueDate,
			&receivable.ExpectedAmount,
			&receivable.InstallmentValue,
			&receivable.ReceivedAmount,
			&receivable.Status,
			&receivable.ReceivedAt,
			&receivable.Notes,
			&receivable.CreatedAt,
		); err != nil {
			return nil, err
		}

		receivables = append(receivables, &receivable)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return receivables, nil
}

func buildReceivablesInsert(receivables []*domain.Receivable) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.
		Insert(receivablesTable).
		Columns("id", "sale_id", "supplier_id", "due_date", "expected_amount", "installment_value", "status").
		PlaceholderFormat(squirrel.Dollar)

	for _, receivable := range receivables {
		query = query.Values(
			receivable.ID,
			receivable.SaleID,
			receivable.SupplierID,
			receivable.DueDate,
			receivable.ExpectedAmount,
			receivable.InstallmentValue,
			receivable.Status,
		)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query de inserção: %w", err)
	}

	return sqlQuery, args, nil
}
