package commissioning

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Policier administra a política fiscal e de comissão da organização
type Policier interface {
	GetOrganization(organizationID string) (*domain.Organization, error)
	UpdateTaxDeductionRate(organizationID string, rate *float64) error
	UpdateCommissionRule(organizationID string, rule *domain.CommissionRule) error
	RecalculateNetValues(ctx context.Context, organizationID, period string) (int, error)
}

type Service struct {
	organizationRepo repository.OrganizationRepository
	saleRepo         repository.SaleRepository
}

func NewService(organizationRepo repository.OrganizationRepository, saleRepo repository.SaleRepository) Policier {
	return &Service{
		organizationRepo: organizationRepo,
		saleRepo:         saleRepo,
	}
}

func (s *Service) GetOrganization(organizationID string) (*domain.Organization, error) {
	organization, err := s.organizationRepo.GetByID(organizationID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a organização")
	}

	if organization == nil {
		return nil, fmt.Errorf("organização não encontrada: %s", organizationID)
	}

	return organization, nil
}

// UpdateTaxDeductionRate valida e grava a nova taxa de dedução (0-100)
func (s *Service) UpdateTaxDeductionRate(organizationID string, rate *float64) error {
	if rate != nil && (*rate < 0 || *rate > 100) {
		return fmt.Errorf("taxa de dedução fora do intervalo 0-100: %.2f", *rate)
	}

	return s.organizationRepo.UpdateTaxDeductionRate(organizationID, rate)
}

// UpdateCommissionRule valida e grava a regra de comissão. Faixas de regras
// escalonadas não podem se sobrepor; a validação acontece aqui, no cadastro.
func (s *Service) UpdateCommissionRule(organizationID string, rule *domain.CommissionRule) error {
	if rule != nil {
		if err := validateRule(rule); err != nil {
			return err
		}
	}

	return s.organizationRepo.UpdateCommissionRule(organizationID, rule)
}

func validateRule(rule *domain.CommissionRule) error {
	switch rule.Type {
	case domain.CommissionRuleFlat:
		if rule.Percent < 0 || rule.Percent > 100 {
			return fmt.Errorf("percentual de comissão fora do intervalo 0-100: %.2f", rule.Percent)
		}
	case domain.CommissionRuleTiered:
		if len(rule.Tiers) == 0 {
			return fmt.Errorf("regra escalonada precisa de pelo menos uma faixa")
		}
		for i, tier := range rule.Tiers {
			if tier.Percent < 0 || tier.Percent > 100 {
				return fmt.Errorf("percentual da faixa %d fora do intervalo 0-100: %.2f", i, tier.Percent)
			}
			if tier.Max != nil && *tier.Max <= tier.Min {
				return fmt.Errorf("faixa %d com limite superior menor ou igual ao inferior", i)
			}
			for j, other := range rule.Tiers {
				if j <= i {
					continue
				}
				if tiersOverlap(tier, other) {
					return fmt.Errorf("faixas %d e %d se sobrepõem", i, j)
				}
			}
		}
	default:
		return fmt.Errorf("tipo de regra de comissão desconhecido: %s", rule.Type)
	}

	return nil
}

func tiersOverlap(a, b domain.CommissionTier) bool {
	aOpen := a.Max == nil
	bOpen := b.Max == nil

	switch {
	case aOpen && bOpen:
		return true
	case aOpen:
		return *b.Max > a.Min
	case bOpen:
		return *a.Max > b.Min
	default:
		return a.Min < *b.Max && b.Min < *a.Max
	}
}

// RecalculateNetValues reaplica a política atual da organização sobre as
// vendas de um mês ("2026-03"). Usado depois de alterar a taxa de dedução ou
// a regra de comissão. Devolve quantas vendas foram atualizadas.
func (s *Service) RecalculateNetValues(ctx context.Context, organizationID, period string) (int, error) {
	organization, err := s.GetOrganization(organizationID)
	if err != nil {
		return 0, err
	}

	start, err := time.Parse("2006-01", period)
	if err != nil {
		return 0, fmt.Errorf("período inválido, esperado AAAA-MM: %s", period)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	sales, err := s.saleRepo.ListByOrganization(organizationID, &start, &end)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao carregar as vendas do período")
	}

	updated := 0
	for _, sale := range sales {
		netValue, commissionValue := ComputeSaleValues(sale.GrossValue, organization)
		if netValue == sale.NetValue && commissionValue == sale.CommissionValue {
			continue
		}

		if err := s.saleRepo.UpdateValues(sale.ID, netValue, commissionValue); err != nil {
			logrus.WithError(err).WithField("sale_id", sale.ID).
				Error("Erro ao atualizar os valores da venda")
			continue
		}
		updated++
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"period":          period,
		"updated":         updated,
	}).Info("Recalculo de valores líquidos concluído")

	return updated, nil
}
