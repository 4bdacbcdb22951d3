package selling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/commissioning"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/receivabling"
	"github.com/rgoulart/commission-tracker-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrSellerNotFound = errors.New("vendedor não encontrado")
	ErrSellerInactive = errors.New("vendedor inativo")
	ErrSaleNotFound   = errors.New("venda não encontrada")
)

// CreateSaleRequest é o payload de registro manual de venda
type CreateSaleRequest struct {
	OrganizationID   string  `json:"-"`
	SellerID         string  `json:"seller_id" validate:"required"`
	ClientName       string  `json:"client_name" validate:"required"`
	GrossValue       float64 `json:"gross_value" validate:"required,gt=0"`
	PaymentCondition *string `json:"payment_condition,omitempty"`
	SaleDate         string  `json:"sale_date" validate:"required"`
}

// Seller administra o cadastro de vendedores e o registro manual de vendas
type Seller interface {
	CreateSeller(seller *domain.Seller) (*domain.Seller, error)
	UpdateSeller(seller *domain.Seller) error
	MapSellerToOwner(sellerID string, externalOwnerID *int64) error
	ListSellers(organizationID string) ([]*domain.Seller, error)
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*domain.Sale, error)
	ListSales(organizationID string, from, to *time.Time) ([]*domain.Sale, error)
}

type Service struct {
	sellerRepo       repository.SellerRepository
	saleRepo         repository.SaleRepository
	receivableRepo   repository.ReceivableRepository
	organizationRepo repository.OrganizationRepository
}

func NewService(
	sellerRepo repository.SellerRepository,
	saleRepo repository.SaleRepository,
	receivableRepo repository.ReceivableRepository,
	organizationRepo repository.OrganizationRepository,
) Seller {
	return &Service{
		sellerRepo:       sellerRepo,
		saleRepo:         saleRepo,
		receivableRepo:   receivableRepo,
		organizationRepo: organizationRepo,
	}
}

func (s *Service) CreateSeller(seller *domain.Seller) (*domain.Seller, error) {
	if seller.Name == "" || seller.OrganizationID == "" {
		return nil, fmt.Errorf("nome e organização do vendedor são obrigatórios")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o ID do vendedor: %w", err)
	}

	seller.ID = id
	seller.Active = true

	return s.sellerRepo.Create(seller)
}

func (s *Service) UpdateSeller(seller *domain.Seller) error {
	return s.sellerRepo.Update(seller)
}

// MapSellerToOwner vincula o vendedor ao dono do deal no CRM. Passar nil
// desfaz o vínculo; deals desse dono voltam a ser pulados na sincronização.
func (s *Service) MapSellerToOwner(sellerID string, externalOwnerID *int64) error {
	seller, err := s.sellerRepo.GetByID(sellerID)
	if err != nil {
		return err
	}

	if seller == nil {
		return ErrSellerNotFound
	}

	return s.sellerRepo.UpdateExternalOwner(sellerID, externalOwnerID)
}

func (s *Service) ListSellers(organizationID string) ([]*domain.Seller, error) {
	return s.sellerRepo.ListByOrganization(organizationID)
}

// CreateSale registra uma venda manual: deriva líquido e comissão da
// política da organização e já gera o plano de recebimento conforme a
// condição de pagamento.
func (s *Service) CreateSale(ctx context.Context, req *CreateSaleRequest) (*domain.Sale, error) {
	organization, err := s.organizationRepo.GetByID(req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if organization == nil {
		return nil, fmt.Errorf("organização não encontrada: %s", req.OrganizationID)
	}

	seller, err := s.sellerRepo.GetByID(req.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil || seller.OrganizationID != req.OrganizationID {
		return nil, ErrSellerNotFound
	}

	// Mesma regra da sincronização: vendedor desativado não recebe vendas
	if !seller.Active {
		return nil, ErrSellerInactive
	}

	saleDate, err := time.Parse(time.DateOnly, req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("data da venda inválida, esperado AAAA-MM-DD: %s", req.SaleDate)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o ID da venda: %w", err)
	}

	netValue, commissionValue := commissioning.ComputeSaleValues(req.GrossValue, organization)

	sale := &domain.Sale{
		ID:               id,
		OrganizationID:   req.OrganizationID,
		SellerID:         req.SellerID,
		ClientName:       req.ClientName,
		GrossValue:       req.GrossValue,
		NetValue:         netValue,
		CommissionValue:  commissionValue,
		PaymentCondition: req.PaymentCondition,
		SaleDate:         saleDate,
	}

	sale, err = s.saleRepo.Create(sale)
	if err != nil {
		return nil, err
	}

	schedule, err := receivabling.BuildSchedule(sale)
	if err != nil {
		return nil, err
	}

	if err := s.receivableRepo.BatchInsert(schedule); err != nil {
		// A venda ficou sem plano; o endpoint de regeneração recupera
		logrus.WithError(err).WithField("sale_id", sale.ID).
			Error("Erro ao gerar o plano de recebimento da venda")
		return sale, err
	}

	return sale, nil
}

func (s *Service) ListSales(organizationID string, from, to *time.Time) ([]*domain.Sale, error) {
	return s.saleRepo.ListByOrganization(organizationID, from, to)
}
