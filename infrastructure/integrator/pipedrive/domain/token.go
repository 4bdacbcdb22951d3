package domain

// TokenResponse é a resposta do endpoint OAuth do Pipedrive, tanto na troca
// do código de autorização quanto na renovação do refresh token
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	APIDomain    string `json:"api_domain"`
}
