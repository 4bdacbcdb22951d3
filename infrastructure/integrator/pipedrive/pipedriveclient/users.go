package pipedriveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
)

type usersResponse struct {
	Success bool                   `json:"success"`
	Data    []pipedrivedomain.User `json:"data"`
}

type userResponse struct {
	Success bool                  `json:"success"`
	Data    *pipedrivedomain.User `json:"data"`
}

// ListUsers busca os usuários (vendedores) da conta Pipedrive
func (c *PipedriveClient) ListUsers(ctx context.Context, apiDomain, accessToken string) ([]pipedrivedomain.User, error) {
	body, err := c.getJSON(ctx, apiDomain, accessToken, "/api/v1/users")
	if err != nil {
		return nil, err
	}

	var response usersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	if !response.Success {
		return nil, fmt.Errorf("a API do Pipedrive retornou success=false na listagem de usuários")
	}

	return response.Data, nil
}

// CurrentUser busca o usuário autenticado, usado para validar a conexão
func (c *PipedriveClient) CurrentUser(ctx context.Context, apiDomain, accessToken string) (*pipedrivedomain.User, error) {
	body, err := c.getJSON(ctx, apiDomain, accessToken, "/api/v1/users/me")
	if err != nil {
		return nil, err
	}

	var response userResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	if !response.Success || response.Data == nil {
		return nil, fmt.Errorf("a API do Pipedrive retornou success=false ao consultar o usuário atual")
	}

	return response.Data, nil
}

func (c *PipedriveClient) getJSON(ctx context.Context, apiDomain, accessToken, endpointPath string) ([]byte, error) {
	endpoint, err := url.Parse(apiDomain)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base da conta")
	}
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	return body, nil
}
