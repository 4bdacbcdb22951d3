package receivabling

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Scheduler gera e administra o plano de recebimento das vendas
type Scheduler interface {
	Generate(ctx context.Context, saleID string) ([]*domain.Receivable, error)
	Regenerate(ctx context.Context, saleID string) ([]*domain.Receivable, error)
	ListBySale(saleID string) ([]*domain.Receivable, error)
	ListByOrganization(organizationID string, from, to *time.Time, status *domain.ReceivableStatus) ([]*domain.Receivable, error)
	MarkReceived(id string, receivedAmount *float64, notes *string) error
	UndoReceived(id string) error
	Stats(organizationID string, from, to time.Time) (*domain.ReceivablesStats, error)
}

type Service struct {
	saleRepo       repository.SaleRepository
	receivableRepo repository.ReceivableRepository
	now            func() time.Time
}

func NewService(saleRepo repository.SaleRepository, receivableRepo repository.ReceivableRepository) *Service {
	return &Service{
		saleRepo:       saleRepo,
		receivableRepo: receivableRepo,
		now:            time.Now,
	}
}

// WithClock injeta um relógio determinístico para testes
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ParseCondition interpreta a condição de pagamento "30/60/90" como offsets
// de dias na ordem em que foram escritos. Partes ilegíveis ou negativas são
// descartadas; sem nenhuma parte válida, a condição vira venda à vista: uma
// parcela com offset zero.
func ParseCondition(condition *string) []int {
	if condition == nil || strings.TrimSpace(*condition) == "" {
		return []int{0}
	}

	parts := strings.Split(*condition, "/")
	offsets := make([]int, 0, len(parts))

	for _, part := range parts {
		offset, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || offset < 0 {
			continue
		}
		offsets = append(offsets, offset)
	}

	if len(offsets) == 0 {
		return []int{0}
	}

	return offsets
}

// BuildSchedule monta as parcelas da venda sem persistir nada.
//
// O vencimento ancora a data da venda ao meio-dia antes de somar os dias,
// para que mudanças de fuso ou horário de verão não desloquem o dia do
// calendário. Valor bruto e comissão são divididos igualmente entre as
// parcelas; a sobra de centavos da divisão é aceita.
func BuildSchedule(sale *domain.Sale) ([]*domain.Receivable, error) {
	offsets := ParseCondition(sale.PaymentCondition)
	installments := len(offsets)

	installmentValue := utils.RoundWithTwoDecimalPlace(sale.GrossValue / float64(installments))
	expectedAmount := utils.RoundWithTwoDecimalPlace(sale.CommissionValue / float64(installments))

	anchor := time.Date(
		sale.SaleDate.Year(), sale.SaleDate.Month(), sale.SaleDate.Day(),
		12, 0, 0, 0, time.UTC,
	)

	receivables := make([]*domain.Receivable, 0, installments)
	for _, offset := range offsets {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar o ID da parcela")
		}

		receivables = append(receivables, &domain.Receivable{
			ID:               id,
			SaleID:           sale.ID,
			DueDate:          anchor.AddDate(0, 0, offset),
			ExpectedAmount:   expectedAmount,
			InstallmentValue: installmentValue,
			Status:           domain.ReceivableStatusPending,
		})
	}

	return receivables, nil
}

// Generate cria o plano de recebimento de uma venda recém-registrada
func (s *Service) Generate(ctx context.Context, saleID string) ([]*domain.Receivable, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a venda")
	}

	if sale == nil {
		return nil, ErrSaleNotFound
	}

	receivables, err := BuildSchedule(sale)
	if err != nil {
		return nil, err
	}

	if err := s.receivableRepo.BatchInsert(receivables); err != nil {
		return nil, errors.Wrap(err, "erro ao inserir o plano de recebimento")
	}

	logrus.WithFields(logrus.Fields{
		"sale_id":      saleID,
		"installments": len(receivables),
	}).Info("Plano de recebimento gerado")

	return receivables, nil
}

// Regenerate descarta o plano atual da venda e cria um novo, na mesma
// transação. Usado após alterar a condição de pagamento ou recalcular os
// valores da venda. Parcelas já recebidas são descartadas junto.
func (s *Service) Regenerate(ctx context.Context, saleID string) ([]*domain.Receivable, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a venda")
	}

	if sale == nil {
		return nil, ErrSaleNotFound
	}

	receivables, err := BuildSchedule(sale)
	if err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Replace(ctx, saleID, receivables); err != nil {
		return nil, errors.Wrap(err, "erro ao substituir o plano de recebimento")
	}

	logrus.WithFields(logrus.Fields{
		"sale_id":      saleID,
		"installments": len(receivables),
	}).Info("Plano de recebimento regenerado")

	return receivables, nil
}

func (s *Service) ListBySale(saleID string) ([]*domain.Receivable, error) {
	return s.receivableRepo.ListBySale(saleID)
}

func (s *Service) ListByOrganization(organizationID string, from, to *time.Time, status *domain.ReceivableStatus) ([]*domain.Receivable, error) {
	return s.receivableRepo.ListByOrganization(organizationID, from, to, status)
}

// MarkReceived registra o recebimento de uma parcela. Sem valor informado,
// assume o valor esperado da parcela.
func (s *Service) MarkReceived(id string, receivedAmount *float64, notes *string) error {
	receivable, err := s.receivableRepo.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "erro ao carregar a parcela")
	}

	if receivable == nil {
		return ErrReceivableNotFound
	}

	if receivable.Status == domain.ReceivableStatusReceived {
		return ErrAlreadyReceived
	}

	amount := receivable.ExpectedAmount
	if receivedAmount != nil {
		amount = *receivedAmount
	}

	return s.receivableRepo.MarkReceived(id, amount, s.now(), notes)
}

// UndoReceived desfaz o recebimento de uma parcela
func (s *Service) UndoReceived(id string) error {
	receivable, err := s.receivableRepo.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "erro ao carregar a parcela")
	}

	if receivable == nil {
		return ErrReceivableNotFound
	}

	if receivable.Status != domain.ReceivableStatusReceived {
		return ErrNotReceived
	}

	return s.receivableRepo.UndoReceived(id)
}

func (s *Service) Stats(organizationID string, from, to time.Time) (*domain.ReceivablesStats, error) {
	return s.receivableRepo.Stats(organizationID, from, to)
}
