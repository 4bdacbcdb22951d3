package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/commissioning"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type UpdateTaxDeductionRequest struct {
	Rate *float64 `json:"rate"`
}

type UpdateCommissionRuleRequest struct {
	Rule *domain.CommissionRule `json:"rule"`
}

type RecalculateResponse struct {
	Period  string `json:"period"`
	Updated int    `json:"updated"`
}

// GetOrganization retorna a organização do usuário logado, incluindo a taxa
// de dedução e a regra de comissão vigentes
func GetOrganization(service commissioning.Policier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		organization, err := service.GetOrganization(userClaims.OrganizationID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar organização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(organization)
	}
}

// UpdateTaxDeduction grava a nova taxa de dedução fiscal da organização.
// Rate nulo remove a dedução; vendas novas passam a usar o valor bruto.
func UpdateTaxDeduction(service commissioning.Policier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req UpdateTaxDeductionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.UpdateTaxDeductionRate(userClaims.OrganizationID, req.Rate); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// UpdateCommissionRule grava a regra de comissão da organização. Rule nula
// desliga a comissão; vendas novas ficam com comissão zero.
func UpdateCommissionRule(service commissioning.Policier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req UpdateCommissionRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.UpdateCommissionRule(userClaims.OrganizationID, req.Rule); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// RecalculateNetValues reaplica a política vigente sobre as vendas de um mês
// (?period=2026-03). Alterações de política não retroagem sozinhas; este
// endpoint é o caminho explícito para reprocessar um período.
func RecalculateNetValues(service commissioning.Policier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		period := r.URL.Query().Get("period")
		if period == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Período não fornecido, esperado ?period=AAAA-MM", nil)
			return
		}

		updated, err := service.RecalculateNetValues(r.Context(), userClaims.OrganizationID, period)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RecalculateResponse{
			Period:  period,
			Updated: updated,
		})
	}
}
