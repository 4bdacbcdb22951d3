package pipedriveclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
	"github.com/sirupsen/logrus"
)

// ExchangeCode troca o código de autorização OAuth por um par de tokens
func (c *PipedriveClient) ExchangeCode(ctx context.Context, code string) (*pipedrivedomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.config.Pipedrive.RedirectURL)

	return c.requestToken(ctx, form)
}

// RefreshToken renova o access token usando o refresh token armazenado
func (c *PipedriveClient) RefreshToken(ctx context.Context, refreshToken string) (*pipedrivedomain.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return c.requestToken(ctx, form)
}

// requestToken chama o endpoint de token do OAuth com autenticação Basic
// (client_id:client_secret), como a documentação do Pipedrive exige
func (c *PipedriveClient) requestToken(ctx context.Context, form url.Values) (*pipedrivedomain.TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/oauth/token", c.config.Pipedrive.OAuthBaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de token")
	}

	credentials := base64.StdEncoding.EncodeToString(
		[]byte(c.config.Pipedrive.ClientID + ":" + c.config.Pipedrive.ClientSecret),
	)
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição de token")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta de token")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro no endpoint de token do Pipedrive. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("endpoint de token respondeu com status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp pipedrivedomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de token")
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}
