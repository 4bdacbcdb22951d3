package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildSalesInsert(t *testing.T) {
	externalDealID := "501"
	integrationID := "cred-1"

	sales := []*domain.Sale{
		{
			ID:             "sale-1",
			OrganizationID: "org-1",
			SellerID:       "seller-1",
			ExternalDealID: &externalDealID,
			IntegrationID:  &integrationID,
			ClientName:     "Cliente Alfa",
			GrossValue:     1000,
			SaleDate:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "sale-2",
			OrganizationID: "org-1",
			SellerID:       "seller-2",
			ClientName:     "Cliente Beta",
			GrossValue:     500,
			SaleDate:       time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		},
	}

	query, args, err := buildSalesInsert(sales)
	assert.NoError(t, err)

	// A idempotência da sincronização depende da chave completa: a mesma
	// organização pode reconectar a integração sem colidir com vendas manuais
	assert.True(t, strings.HasSuffix(query, "ON CONFLICT (organization_id, integration_id, external_deal_id) DO NOTHING"))
	assert.Len(t, args, 22)
}
