package syncing

import "github.com/rgoulart/commission-tracker-api/internal/domain"

// SellerMap resolve o dono do deal no CRM para o vendedor interno.
// Construído uma vez por execução; consultas são O(1).
type SellerMap map[int64]string

// BuildSellerMap indexa os vendedores ativos que têm vínculo com o CRM.
// Vendedores inativos ou sem external_owner_id ficam de fora: deals deles
// são contados como não mapeados, nunca como erro.
func BuildSellerMap(sellers []*domain.Seller) SellerMap {
	sellerMap := make(SellerMap, len(sellers))

	for _, seller := range sellers {
		if !seller.Active || seller.ExternalOwnerID == nil {
			continue
		}
		sellerMap[*seller.ExternalOwnerID] = seller.ID
	}

	return sellerMap
}

// Resolve devolve o vendedor interno dono do deal, se houver mapeamento
func (m SellerMap) Resolve(externalOwnerID int64) (string, bool) {
	sellerID, ok := m[externalOwnerID]
	return sellerID, ok
}
