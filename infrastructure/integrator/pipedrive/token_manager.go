package pipedrive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/pipedriveclient"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// refreshMargin antecipa a renovação do token. A margem absorve desvio de
// relógio e a latência da própria requisição: um token a 5 minutos do fim é
// tratado como expirado.
const refreshMargin = 5 * time.Minute

// Session é um handle autenticado pronto para chamar a API da conta
type Session struct {
	APIDomain   string
	AccessToken string
}

// TokenManager devolve sessões autenticadas por organização, renovando o
// token de forma transparente quando necessário.
//
// A renovação é uma seção crítica por organização: duas renovações
// simultâneas invalidariam o refresh token uma da outra.
type TokenManager struct {
	credentialRepo repository.CredentialRepository
	client         pipedriveclient.Client
	now            func() time.Time

	mu       sync.Mutex
	orgLocks map[string]*sync.Mutex
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(credentialRepo repository.CredentialRepository, client pipedriveclient.Client) *TokenManager {
	return &TokenManager{
		credentialRepo: credentialRepo,
		client:         client,
		now:            time.Now,
		orgLocks:       make(map[string]*sync.Mutex),
	}
}

// WithClock injeta um relógio determinístico para testes
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Session carrega a credencial da organização e devolve um handle vivo.
// Sem credencial → ErrIntegrationNotFound. Renovação rejeitada →
// ErrIntegrationAuth, sem tocar na credencial armazenada e sem retry — a
// decisão de tentar de novo é do chamador.
func (tm *TokenManager) Session(ctx context.Context, organizationID string) (*Session, error) {
	lock := tm.lockFor(organizationID)
	lock.Lock()
	defer lock.Unlock()

	credential, err := tm.credentialRepo.GetByOrganizationAndProvider(organizationID, domain.ProviderPipedrive)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar credencial da organização")
	}

	if credential == nil {
		return nil, ErrIntegrationNotFound
	}

	if !tm.expired(credential) {
		return tm.sessionFrom(credential.AccountDomain, credential.AccessToken)
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"expires_at":      credential.ExpiresAt.Format(time.RFC3339),
	}).Info("Token do Pipedrive expirado ou próximo da expiração. Renovando...")

	tokenResp, err := tm.client.RefreshToken(ctx, credential.RefreshToken)
	if err != nil {
		logrus.WithError(err).Error("Erro ao renovar token do Pipedrive")
		return nil, fmt.Errorf("%w: %v", ErrIntegrationAuth, err)
	}

	expiresAt := tm.now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	accountDomain := credential.AccountDomain
	if tokenResp.APIDomain != "" {
		accountDomain = &tokenResp.APIDomain
	}

	err = tm.credentialRepo.UpdateTokens(credential.ID, tokenResp.AccessToken, tokenResp.RefreshToken, expiresAt, accountDomain)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao persistir tokens renovados")
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"expires_at":      expiresAt.Format(time.RFC3339),
	}).Info("Token do Pipedrive renovado com sucesso")

	return tm.sessionFrom(accountDomain, tokenResp.AccessToken)
}

// expired aplica a margem de 5 minutos sobre a expiração armazenada
func (tm *TokenManager) expired(credential *domain.Credential) bool {
	return credential.ExpiresAt.Sub(tm.now()) <= refreshMargin
}

func (tm *TokenManager) sessionFrom(accountDomain *string, accessToken string) (*Session, error) {
	if accountDomain == nil || *accountDomain == "" {
		return nil, fmt.Errorf("%w: credencial sem domínio da conta", ErrIntegrationAuth)
	}

	return &Session{
		APIDomain:   *accountDomain,
		AccessToken: accessToken,
	}, nil
}

func (tm *TokenManager) lockFor(organizationID string) *sync.Mutex {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if lock, ok := tm.orgLocks[organizationID]; ok {
		return lock
	}

	lock := &sync.Mutex{}
	tm.orgLocks[organizationID] = lock
	return lock
}
