package pipedriveclient

import (
	"context"
	"net/http"

	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
	"github.com/rgoulart/commission-tracker-api/internal/config"
)

type Client interface {
	ListDeals(ctx context.Context, apiDomain, accessToken, status string) ([]pipedrivedomain.Deal, error)
	ListUsers(ctx context.Context, apiDomain, accessToken string) ([]pipedrivedomain.User, error)
	CurrentUser(ctx context.Context, apiDomain, accessToken string) (*pipedrivedomain.User, error)
	ExchangeCode(ctx context.Context, code string) (*pipedrivedomain.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*pipedrivedomain.TokenResponse, error)
}

type PipedriveClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente da API do Pipedrive
func NewClient(cfg *config.Config) Client {
	return &PipedriveClient{
		httpClient: &http.Client{
			Timeout: cfg.Pipedrive.RequestTimeout,
		},
		config: cfg,
	}
}

// pageLimit resolve o tamanho de página respeitando o default da API
func (c *PipedriveClient) pageLimit() int {
	if c.config.Pipedrive.PageLimit > 0 {
		return c.config.Pipedrive.PageLimit
	}
	return 100
}
