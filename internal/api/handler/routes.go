package handler

import (
	"net/http"

	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	"github.com/rgoulart/commission-tracker-api/internal/api/handler/router"
	"github.com/rgoulart/commission-tracker-api/internal/scheduler"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/authenticating"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/commissioning"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/receivabling"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/selling"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/syncing"
	"github.com/rgoulart/commission-tracker-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Integrations retorna as rotas do ciclo de vida da integração com o
// Pipedrive. O callback é público: o navegador chega sem token da aplicação.
func Integrations(service pipedrive.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations/pipedrive/connect",
			Method:      http.MethodGet,
			Handler:     ConnectPipedrive(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:    "/v1/integrations/pipedrive/callback",
			Method:  http.MethodGet,
			Handler: PipedriveCallback(service),
		},
		{
			Path:        "/v1/integrations/pipedrive",
			Method:      http.MethodDelete,
			Handler:     DisconnectPipedrive(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/integrations/pipedrive/deals",
			Method:      http.MethodGet,
			Handler:     ListPipedriveDeals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/pipedrive/users",
			Method:      http.MethodGet,
			Handler:     ListPipedriveUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sync(service syncing.Syncer, syncScheduler *scheduler.DealSyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/pipedrive",
			Method:      http.MethodPost,
			Handler:     SyncDeals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSyncCycle(syncScheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(syncScheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Organization(service commissioning.Policier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/organization",
			Method:      http.MethodGet,
			Handler:     GetOrganization(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/organization/tax-deduction",
			Method:      http.MethodPut,
			Handler:     UpdateTaxDeduction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/organization/commission-rule",
			Method:      http.MethodPut,
			Handler:     UpdateCommissionRule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/organization/recalculate",
			Method:      http.MethodPost,
			Handler:     RecalculateNetValues(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Sellers(service selling.Seller) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sellers",
			Method:      http.MethodGet,
			Handler:     ListSellers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sellers",
			Method:      http.MethodPost,
			Handler:     CreateSeller(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sellers/:id",
			Method:      http.MethodPut,
			Handler:     UpdateSeller(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sellers/:id/external-owner",
			Method:      http.MethodPut,
			Handler:     MapSellerToOwner(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Sales(service selling.Seller, receivableService receivabling.Scheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/receivables",
			Method:      http.MethodGet,
			Handler:     ListSaleReceivables(receivableService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/receivables",
			Method:      http.MethodPost,
			Handler:     GenerateReceivables(receivableService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sales/:id/receivables/regenerate",
			Method:      http.MethodPost,
			Handler:     RegenerateReceivables(receivableService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Receivables(service receivabling.Scheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/receivables",
			Method:      http.MethodGet,
			Handler:     ListReceivables(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/receivables/stats",
			Method:      http.MethodGet,
			Handler:     GetReceivablesStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/receivables/:id/receive",
			Method:      http.MethodPost,
			Handler:     MarkReceivableReceived(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/receivables/:id/undo-receive",
			Method:      http.MethodPost,
			Handler:     UndoReceivableReceived(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
