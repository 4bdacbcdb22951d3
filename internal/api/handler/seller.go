package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/selling"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type MapSellerRequest struct {
	ExternalOwnerID *int64 `json:"external_owner_id"`
}

// ListSellers lista os vendedores da organização do usuário logado
func ListSellers(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		sellers, err := service.ListSellers(userClaims.OrganizationID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendedores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sellers)
	}
}

// CreateSeller cadastra um vendedor na organização do usuário logado
func CreateSeller(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateSeller")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var seller *domain.Seller
		if err := json.NewDecoder(r.Body).Decode(&seller); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		seller.OrganizationID = userClaims.OrganizationID

		seller, err := service.CreateSeller(seller)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(seller)
	}
}

// UpdateSeller atualiza os dados cadastrais do vendedor
func UpdateSeller(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateSeller")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do vendedor não fornecido", nil)
			return
		}

		var seller *domain.Seller
		if err := json.NewDecoder(r.Body).Decode(&seller); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		seller.ID = id
		seller.OrganizationID = userClaims.OrganizationID

		if err := service.UpdateSeller(seller); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar vendedor", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// MapSellerToOwner vincula o vendedor a um usuário do CRM. Corpo com
// external_owner_id nulo desfaz o vínculo.
func MapSellerToOwner(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - MapSellerToOwner")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do vendedor não fornecido", nil)
			return
		}

		var req MapSellerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.MapSellerToOwner(id, req.ExternalOwnerID); err != nil {
			logrus.Error(err)

			if errors.Is(err, selling.ErrSellerNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Vendedor não encontrado", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao vincular vendedor", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
