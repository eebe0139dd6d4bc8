package redditclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/reddit-ads-sync/internal/config"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
)

// TokenManager gerencia o ciclo de vida do token de acesso da API do Reddit:
// lê o blob de credenciais do armazenamento de segredos, troca o refresh_token
// por um access_token na inicialização e persiste o registro atualizado.
type TokenManager struct {
	cfg         *config.Config
	storage     config.SecretStorage
	httpClient  *http.Client
	credentials *redditdomain.Credentials
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config, storage config.SecretStorage) *TokenManager {
	return &TokenManager{
		cfg:     cfg,
		storage: storage,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Initialize lê as credenciais do armazenamento de segredos e faz o refresh
// inicial do token. Deve completar antes de qualquer chamada à API de dados.
func (tm *TokenManager) Initialize() (*redditdomain.Credentials, error) {
	content, err := tm.storage.GetSecret(tm.cfg.Render.ServiceID, tm.cfg.Reddit.SecretName)
	if err != nil {
		return nil, err
	}

	credentials := &redditdomain.Credentials{}
	if err := json.Unmarshal([]byte(content), credentials); err != nil {
		return nil, config.NewConfigError(config.ErrMalformedCredential, err.Error())
	}

	if missing := credentials.MissingFields(); len(missing) > 0 {
		return nil, config.NewConfigError(config.ErrMissingCredentialField, strings.Join(missing, ", "))
	}

	tm.credentials = credentials
	logrus.WithField("secret_name", tm.cfg.Reddit.SecretName).Info("Credenciais do Reddit carregadas do armazenamento de segredos")

	return tm.Refresh()
}

// Credentials retorna o registro de credenciais atual
func (tm *TokenManager) Credentials() *redditdomain.Credentials {
	return tm.credentials
}

// Refresh troca o refresh_token armazenado por um novo access_token
func (tm *TokenManager) Refresh() (*redditdomain.Credentials, error) {
	grant := url.Values{}
	grant.Set("grant_type", "refresh_token")
	grant.Set("refresh_token", tm.credentials.RefreshToken)

	return tm.Exchange(grant)
}

// GetToken troca um código de autorização por um par de tokens. Usado apenas
// na primeira autorização da conta, fora do fluxo normal do job.
func (tm *TokenManager) GetToken(code string) (*redditdomain.Credentials, error) {
	grant := url.Values{}
	grant.Set("grant_type", "authorization_code")
	grant.Set("code", code)
	grant.Set("redirect_uri", tm.credentials.RedirectURL)

	return tm.Exchange(grant)
}

// Exchange executa a chamada ao endpoint de token com o grant informado,
// atualiza o registro de credenciais e o persiste de volta no armazenamento
// de segredos. O registro só é persistido após uma troca bem-sucedida.
func (tm *TokenManager) Exchange(grant url.Values) (*redditdomain.Credentials, error) {
	req, err := http.NewRequest(http.MethodPost, tm.cfg.Reddit.TokenURL, strings.NewReader(grant.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição de token: %w", err)
	}

	req.SetBasicAuth(tm.credentials.ClientID, tm.credentials.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", tm.cfg.Reddit.UserAgent)

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar o endpoint de token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do endpoint de token: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logrus.Errorf("Erro na troca de token. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return nil, NewAuthError(ErrTokenExchange, resp.StatusCode, string(body))
	}

	var token redditdomain.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do endpoint de token: %w", err)
	}

	if token.Error != "" {
		return nil, NewAuthError(ErrTokenAPIResponse, 0, token.Error)
	}

	// O Reddit às vezes retorna refresh_token nulo. Nesse caso o valor
	// anterior é mantido; ele nunca pode ser sobrescrito com vazio.
	if token.RefreshToken != "" {
		tm.credentials.RefreshToken = token.RefreshToken
	}
	if token.AccessToken != "" {
		tm.credentials.AccessToken = token.AccessToken
	}

	if err := tm.persist(); err != nil {
		return nil, err
	}

	logrus.Info("Token de acesso do Reddit renovado com sucesso")

	return tm.credentials, nil
}

// persist grava o registro de credenciais atualizado no armazenamento de segredos
func (tm *TokenManager) persist() error {
	content, err := json.MarshalIndent(tm.credentials, "", "    ")
	if err != nil {
		return fmt.Errorf("erro ao serializar credenciais: %w", err)
	}

	if err := tm.storage.AddOrUpdateSecret(tm.cfg.Render.ServiceID, tm.cfg.Reddit.SecretName, string(content)); err != nil {
		return fmt.Errorf("erro ao persistir credenciais no armazenamento de segredos: %w", err)
	}

	logrus.WithField("secret_name", tm.cfg.Reddit.SecretName).Debug("Credenciais persistidas no armazenamento de segredos")
	return nil
}
