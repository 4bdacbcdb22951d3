package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type ConnectPipedriveResponse struct {
	AuthURL string `json:"auth_url"`
}

type PipedriveCallbackResponse struct {
	OrganizationID string  `json:"organization_id"`
	AccountDomain  *string `json:"account_domain,omitempty"`
	Connected      bool    `json:"connected"`
}

// ConnectPipedrive devolve a URL de autorização do Pipedrive para a
// organização do usuário logado iniciar o fluxo OAuth
func ConnectPipedrive(service pipedrive.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ConnectPipedriveResponse{
			AuthURL: service.AuthURL(userClaims.OrganizationID),
		})
	}
}

// PipedriveCallback recebe o redirecionamento do Pipedrive após a autorização.
// É uma rota pública: o navegador chega aqui sem token da aplicação; a
// organização vem do parâmetro state emitido em ConnectPipedrive.
func PipedriveCallback(service pipedrive.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		code := query.Get("code")
		if code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Código de autorização não fornecido", nil)
			return
		}

		organizationID, err := pipedrive.DecodeState(query.Get("state"))
		if err != nil {
			logrus.WithError(err).Error("Parâmetro state inválido no callback do Pipedrive")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro state inválido", nil)
			return
		}

		credential, err := service.Connect(r.Context(), organizationID, code)
		if err != nil {
			logrus.WithError(err).WithField("organization_id", organizationID).
				Error("Erro ao concluir a conexão com o Pipedrive")
			apiErrors.WriteError(w, apiErrors.ErrOAuthExchange, "Erro ao concluir a conexão com o Pipedrive", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PipedriveCallbackResponse{
			OrganizationID: credential.OrganizationID,
			AccountDomain:  credential.AccountDomain,
			Connected:      true,
		})
	}
}

// DisconnectPipedrive remove a credencial da organização. Vendas já
// importadas permanecem.
func DisconnectPipedrive(service pipedrive.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if err := service.Disconnect(r.Context(), userClaims.OrganizationID); err != nil {
			writeIntegrationError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListPipedriveDeals repassa os deals do CRM sem gravar nada, útil para
// conferir o que a sincronização vai importar
func ListPipedriveDeals(service pipedrive.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		status := r.URL.Query().Get("status")
		if status == "" {
			status = "won"
		}

		deals, err := service.Deals(r.Context(), userClaims.OrganizationID, status)
		if err != nil {
			writeIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(deals)
	}
}

// ListPipedriveUsers lista os usuários do CRM, insumo para o mapeamento de
// vendedores
func ListPipedriveUsers(service pipedrive.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		users, err := service.Users(r.Context(), userClaims.OrganizationID)
		if err != nil {
			writeIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(users)
	}
}

// writeIntegrationError converte os erros da integração nos códigos da API
func writeIntegrationError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, pipedrive.ErrIntegrationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Organização sem integração conectada", nil)

	case errors.Is(err, pipedrive.ErrIntegrationAuth):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationAuth, "Credencial rejeitada pelo provedor, reconecte a integração", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrIntegrationFetch, "Erro ao consultar o provedor", nil)
	}
}
