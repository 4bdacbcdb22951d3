package pipedrive

import "errors"

// Erros de integração expostos para as camadas de cima. A sincronização
// classifica a falha da execução a partir deles com errors.Is.
var (
	// ErrIntegrationNotFound indica que a organização não tem credencial
	// Pipedrive armazenada
	ErrIntegrationNotFound = errors.New("integração Pipedrive não encontrada para a organização")

	// ErrIntegrationAuth indica que o provedor rejeitou a renovação do token;
	// a credencial armazenada permanece intacta e a próxima tentativa renova
	// de novo
	ErrIntegrationAuth = errors.New("o Pipedrive rejeitou a renovação do token")
)
