package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/selling"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
	"github.com/rgoulart/commission-tracker-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// CreateSale registra uma venda manual na organização do usuário logado
func CreateSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateSale")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req selling.CreateSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := validate.Struct(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados obrigatórios ausentes ou inválidos", err.Error())
			return
		}

		req.OrganizationID = userClaims.OrganizationID

		sale, err := service.CreateSale(r.Context(), &req)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, selling.ErrSellerNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Vendedor não encontrado na organização", nil)
				return
			}

			if errors.Is(err, selling.ErrSellerInactive) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Vendedor inativo não pode receber vendas", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(sale)
	}
}

// ListSales lista as vendas da organização, com filtro opcional de período
// (?from=AAAA-MM-DD&to=AAAA-MM-DD)
func ListSales(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		from, to, err := parsePeriodFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas inválidas, esperado AAAA-MM-DD", nil)
			return
		}

		sales, err := service.ListSales(userClaims.OrganizationID, from, to)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sales)
	}
}

// parsePeriodFilter lê os filtros opcionais from/to da query string
func parsePeriodFilter(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := utils.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		return nil, nil, err
	}

	to, err := utils.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		return nil, nil, err
	}

	return from, to, nil
}
