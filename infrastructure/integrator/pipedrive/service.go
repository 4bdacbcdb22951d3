package pipedrive

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/pipedriveclient"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/config"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/rgoulart/commission-tracker-api/pkg/utils"
	"github.com/sirupsen/logrus"

	pipedrivedomain "github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Integrator é a fachada do Pipedrive consumida pelos casos de uso. As
// operações de leitura resolvem a sessão da organização internamente,
// renovando o token quando preciso.
type Integrator interface {
	AuthURL(organizationID string) string
	Connect(ctx context.Context, organizationID, code string) (*domain.Credential, error)
	Disconnect(ctx context.Context, organizationID string) error
	WonDeals(ctx context.Context, organizationID string) ([]pipedrivedomain.Deal, error)
	Deals(ctx context.Context, organizationID, status string) ([]pipedrivedomain.Deal, error)
	Users(ctx context.Context, organizationID string) ([]pipedrivedomain.User, error)
}

type Service struct {
	cfg            *config.Config
	client         pipedriveclient.Client
	tokenManager   *TokenManager
	credentialRepo repository.CredentialRepository
}

// NewService cria a fachada do integrador Pipedrive
func NewService(
	cfg *config.Config,
	client pipedriveclient.Client,
	tokenManager *TokenManager,
	credentialRepo repository.CredentialRepository,
) *Service {
	return &Service{
		cfg:            cfg,
		client:         client,
		tokenManager:   tokenManager,
		credentialRepo: credentialRepo,
	}
}

type oauthState struct {
	OrganizationID string `json:"organization_id"`
}

// EncodeState serializa a organização no parâmetro state do fluxo OAuth
func EncodeState(organizationID string) string {
	payload, _ := json.Marshal(oauthState{OrganizationID: organizationID})
	return base64.RawURLEncoding.EncodeToString(payload)
}

// DecodeState recupera a organização a partir do state devolvido no callback
func DecodeState(state string) (string, error) {
	payload, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return "", errors.Wrap(err, "erro ao decodificar o state do OAuth")
	}

	var decoded oauthState
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", errors.Wrap(err, "erro ao interpretar o state do OAuth")
	}

	if decoded.OrganizationID == "" {
		return "", fmt.Errorf("state do OAuth sem organização")
	}

	return decoded.OrganizationID, nil
}

// AuthURL monta a URL de autorização para a organização iniciar a conexão
func (s *Service) AuthURL(organizationID string) string {
	query := url.Values{}
	query.Set("client_id", s.cfg.Pipedrive.ClientID)
	query.Set("redirect_uri", s.cfg.Pipedrive.RedirectURL)
	query.Set("state", EncodeState(organizationID))

	return fmt.Sprintf("%s/oauth/authorize?%s", s.cfg.Pipedrive.OAuthBaseURL, query.Encode())
}

// Connect troca o código de autorização por tokens, valida a conta chamando
// o usuário atual e persiste a credencial da organização. Reconectar uma
// organização já conectada substitui a credencial anterior.
func (s *Service) Connect(ctx context.Context, organizationID, code string) (*domain.Credential, error) {
	tokenResp, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao trocar o código de autorização")
	}

	currentUser, err := s.client.CurrentUser(ctx, tokenResp.APIDomain, tokenResp.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao validar a conta conectada")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o ID da credencial")
	}

	apiDomain := tokenResp.APIDomain
	credential := &domain.Credential{
		ID:             id,
		OrganizationID: organizationID,
		Provider:       domain.ProviderPipedrive,
		AccountDomain:  &apiDomain,
		AccessToken:    tokenResp.AccessToken,
		RefreshToken:   tokenResp.RefreshToken,
		ExpiresAt:      time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}

	saved, err := s.credentialRepo.Upsert(credential)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao salvar a credencial")
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"api_domain":      apiDomain,
		"account_user":    currentUser.Name,
	}).Info("Conta Pipedrive conectada com sucesso")

	return saved, nil
}

// Disconnect remove a credencial da organização. As vendas já sincronizadas
// permanecem no banco.
func (s *Service) Disconnect(ctx context.Context, organizationID string) error {
	return s.credentialRepo.Delete(organizationID, domain.ProviderPipedrive)
}

// WonDeals busca os deals ganhos da conta da organização
func (s *Service) WonDeals(ctx context.Context, organizationID string) ([]pipedrivedomain.Deal, error) {
	return s.Deals(ctx, organizationID, pipedrivedomain.DealStatusWon)
}

// Deals busca os deals da conta da organização com o status informado
func (s *Service) Deals(ctx context.Context, organizationID, status string) ([]pipedrivedomain.Deal, error) {
	session, err := s.tokenManager.Session(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return s.client.ListDeals(ctx, session.APIDomain, session.AccessToken, status)
}

// Users busca os usuários da conta da organização
func (s *Service) Users(ctx context.Context, organizationID string) ([]pipedrivedomain.User, error) {
	session, err := s.tokenManager.Session(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return s.client.ListUsers(ctx, session.APIDomain, session.AccessToken)
}
