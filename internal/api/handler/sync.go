package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/scheduler"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/syncing"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// SyncDeals dispara a sincronização de deals da organização do usuário
// logado. Com ?force=true ignora a janela mínima entre sincronizações.
func SyncDeals(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var result *domain.SyncResult
		var err error

		if r.URL.Query().Get("force") == "true" {
			result, err = service.ForceSync(r.Context(), userClaims.OrganizationID)
		} else {
			result, err = service.SyncIfNeeded(r.Context(), userClaims.OrganizationID)
		}

		if err != nil {
			writeSyncError(w, err)
			return
		}

		status := http.StatusOK
		if result.Throttled {
			// Outra sincronização recente ou em andamento
			status = http.StatusTooManyRequests
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(result)
	}
}

// RunSyncCycle dispara manualmente um ciclo completo do agendador, todas as
// organizações conectadas
func RunSyncCycle(service *scheduler.DealSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSyncCycle")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem disparar o ciclo de sincronização", nil)
			return
		}

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de sincronização não disponível", nil)
			return
		}

		if err := service.TriggerManualSync(r.Context()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Ciclo de sincronização iniciado com sucesso",
		})
	}
}

// GetSyncStatus retorna o estado do agendador de sincronização
func GetSyncStatus(service *scheduler.DealSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar o status da sincronização", nil)
			return
		}

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de sincronização não disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.GetStatus())
	}
}

// writeSyncError converte os erros da sincronização nos códigos da API.
// Erros do pipeline chegam como SyncError e já trazem o código; os demais
// caem no mapeamento por sentinela.
func writeSyncError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var syncErr *syncing.SyncError
	if errors.As(err, &syncErr) {
		apiErrors.WriteError(w, syncErr.Code, syncErr.Err.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, pipedrive.ErrIntegrationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Organização sem integração conectada", nil)

	case errors.Is(err, pipedrive.ErrIntegrationAuth):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationAuth, "Credencial rejeitada pelo provedor, reconecte a integração", nil)

	case errors.Is(err, syncing.ErrFetch):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationFetch, "Erro ao buscar deals no CRM", nil)

	case errors.Is(err, syncing.ErrInsert):
		apiErrors.WriteError(w, apiErrors.ErrSyncInsert, "Erro ao gravar as vendas sincronizadas", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno na sincronização", nil)
	}
}
