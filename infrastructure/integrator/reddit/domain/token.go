package redditdomain

// TokenResponse representa a resposta do endpoint de access_token do Reddit.
// O Reddit pode omitir refresh_token na resposta de um refresh; nesse caso o
// valor anterior deve ser mantido.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	Error        string `json:"error"`
}
