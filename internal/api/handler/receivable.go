package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/receivabling"
	"github.com/rgoulart/commission-tracker-api/pkg/apiErrors"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type MarkReceivedRequest struct {
	ReceivedAmount *float64 `json:"received_amount,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// ListSaleReceivables lista as parcelas do plano de recebimento de uma venda
func ListSaleReceivables(service receivabling.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if saleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda não fornecido", nil)
			return
		}

		receivables, err := service.ListBySale(saleID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar parcelas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(receivables)
	}
}

// ListReceivables lista as parcelas da organização com filtros opcionais de
// vencimento (?from=&to=) e situação (?status=pending|received)
func ListReceivables(service receivabling.Scheduler) http.HandlerFunc {
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

		var status *domain.ReceivableStatus
		if statusStr := r.URL.Query().Get("status"); statusStr != "" {
			parsed := domain.ReceivableStatus(statusStr)
			if parsed != domain.ReceivableStatusPending && parsed != domain.ReceivableStatusReceived {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Situação inválida, esperado pending ou received", nil)
				return
			}
			status = &parsed
		}

		receivables, err := service.ListByOrganization(userClaims.OrganizationID, from, to, status)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar parcelas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(receivables)
	}
}

// GenerateReceivables cria o plano de recebimento de uma venda que ainda não
// tem parcelas, caminho de recuperação quando a geração na criação falhou
func GenerateReceivables(service receivabling.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateReceivables")

		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if saleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda não fornecido", nil)
			return
		}

		receivables, err := service.Generate(r.Context(), saleID)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, receivabling.ErrSaleNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Venda não encontrada", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar o plano de recebimento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(receivables)
	}
}

// RegenerateReceivables descarta e recria o plano de recebimento de uma
// venda a partir da condição de pagamento atual
func RegenerateReceivables(service receivabling.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RegenerateReceivables")

		saleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if saleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda não fornecido", nil)
			return
		}

		receivables, err := service.Regenerate(r.Context(), saleID)
		if err != nil {
			logrus.Error(err)

			if errors.Is(err, receivabling.ErrSaleNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Venda não encontrada", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao regenerar o plano de recebimento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(receivables)
	}
}

// MarkReceivableReceived registra o recebimento de uma parcela. Sem valor no
// corpo, assume o valor esperado da parcela.
func MarkReceivableReceived(service receivabling.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - MarkReceivableReceived")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da parcela não fornecido", nil)
			return
		}

		var req MarkReceivedRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		if err := service.MarkReceived(id, req.ReceivedAmount, req.Notes); err != nil {
			writeReceivableError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// UndoReceivableReceived desfaz o recebimento de uma parcela
func UndoReceivableReceived(service receivabling.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UndoReceivableReceived")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da parcela não fornecido", nil)
			return
		}

		if err := service.UndoReceived(id); err != nil {
			writeReceivableError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// GetReceivablesStats resume os recebíveis do período para o dashboard de
// fluxo de caixa (?from=AAAA-MM-DD&to=AAAA-MM-DD obrigatórios)
func GetReceivablesStats(service receivabling.Scheduler) http.HandlerFunc {
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

		if from == nil || to == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Período obrigatório, esperado ?from=AAAA-MM-DD&to=AAAA-MM-DD", nil)
			return
		}

		stats, err := service.Stats(userClaims.OrganizationID, *from, *to)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular o resumo de recebíveis", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

// writeReceivableError converte os erros de recebíveis nos códigos da API
func writeReceivableError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, receivabling.ErrReceivableNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parcela não encontrada", nil)

	case errors.Is(err, receivabling.ErrAlreadyReceived):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parcela já recebida", nil)

	case errors.Is(err, receivabling.ErrNotReceived):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parcela ainda não recebida", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar a parcela", nil)
	}
}
