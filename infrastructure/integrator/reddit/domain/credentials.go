package redditdomain

// Credentials representa o blob de credenciais persistido no armazenamento de
// segredos. O registro é lido uma vez no início do processo e gravado de volta
// sempre que uma troca de token é bem-sucedida.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccountID    string `json:"account_id"`
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

// MissingFields retorna os campos obrigatórios ausentes do registro.
// access_token pode estar vazio: ele é obtido no primeiro refresh.
func (c *Credentials) MissingFields() []string {
	missing := make([]string, 0)

	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if c.AccountID == "" {
		missing = append(missing, "account_id")
	}
	if c.RefreshToken == "" {
		missing = append(missing, "refresh_token")
	}

	return missing
}
