package pipedriveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/pkg/errors"
	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
)

// dealsResponse é o envelope da listagem de deals, com os metadados de
// paginação em additional_data
type dealsResponse struct {
	Success        bool                   `json:"success"`
	Data           []pipedrivedomain.Deal `json:"data"`
	AdditionalData *struct {
		Pagination *struct {
			Start                 int  `json:"start"`
			Limit                 int  `json:"limit"`
			MoreItemsInCollection bool `json:"more_items_in_collection"`
		} `json:"pagination"`
	} `json:"additional_data"`
}

// ListDeals busca todos os deals com o status informado, percorrendo a
// paginação da API até o fim. O chamador recebe a coleção completa.
func (c *PipedriveClient) ListDeals(ctx context.Context, apiDomain, accessToken, status string) ([]pipedrivedomain.Deal, error) {
	deals := make([]pipedrivedomain.Deal, 0)
	start := 0

	for {
		page, pagination, err := c.listDealsPage(ctx, apiDomain, accessToken, status, start)
		if err != nil {
			return nil, err
		}

		deals = append(deals, page...)

		if pagination == nil || !pagination.more {
			return deals, nil
		}
		start = pagination.start + pagination.limit
	}
}

type paginationInfo struct {
	start int
	limit int
	more  bool
}

func (c *PipedriveClient) listDealsPage(ctx context.Context, apiDomain, accessToken, status string, start int) ([]pipedrivedomain.Deal, *paginationInfo, error) {
	endpoint, err := url.Parse(apiDomain)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao analisar a URL base da conta")
	}
	endpoint.Path = path.Join(endpoint.Path, "/api/v1/deals")

	query := endpoint.Query()
	if status != "" {
		query.Set("status", status)
	}
	query.Set("start", strconv.Itoa(start))
	query.Set("limit", strconv.Itoa(c.pageLimit()))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, decodeAPIError(resp)
	}

	var response dealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	if !response.Success {
		return nil, nil, fmt.Errorf("a API do Pipedrive retornou success=false na listagem de deals")
	}

	var pagination *paginationInfo
	if response.AdditionalData != nil && response.AdditionalData.Pagination != nil {
		p := response.AdditionalData.Pagination
		pagination = &paginationInfo{start: p.Start, limit: p.Limit, more: p.MoreItemsInCollection}
	}

	return response.Data, pagination, nil
}

// decodeAPIError tenta extrair o envelope de erro padrão da API
func decodeAPIError(resp *http.Response) error {
	var errResp pipedrivedomain.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("requisição falhou com status %s: %s", resp.Status, errResp.Message())
	}
	return fmt.Errorf("requisição falhou com status: %s", resp.Status)
}
