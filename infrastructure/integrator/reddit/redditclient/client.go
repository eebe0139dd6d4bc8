package redditclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetReports(ctx context.Context, startDate time.Time) ([]redditdomain.ReportRow, error)
	GetAds(ctx context.Context) ([]redditdomain.Ad, error)
	GetAdGroups(ctx context.Context) ([]redditdomain.AdGroup, error)
	GetCampaigns(ctx context.Context) ([]redditdomain.Campaign, error)
}

// RedditClient expõe as operações de leitura da API de anúncios do Reddit,
// todas no escopo de uma única conta autenticada. O cabeçalho de autorização
// é calculado uma vez na construção: a execução do job é mais curta que a
// vida útil do token.
type RedditClient struct {
	cfg        *config.Config
	accountID  string
	authHeader string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient cria um cliente vinculado à conta das credenciais informadas.
// O TokenManager precisa ter completado a inicialização antes deste ponto.
func NewClient(cfg *config.Config, credentials *redditdomain.Credentials) Client {
	delay := time.Duration(cfg.Reddit.RequestDelaySeconds) * time.Second
	if delay <= 0 {
		delay = time.Second
	}

	return &RedditClient{
		cfg:        cfg,
		accountID:  credentials.AccountID,
		authHeader: "bearer " + credentials.AccessToken,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type dataEnvelope struct {
	Data *jsoniter.RawMessage `json:"data"`
}

// request faz um GET autenticado em {base}/accounts/{account_id}/{resource} e
// devolve o campo data do envelope JSON. O limitador global segura a chamada
// (em vez de falhar) até a janela de 1 requisição por período permitir.
func (c *RedditClient) request(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%s/accounts/%s/%s", c.cfg.Reddit.BaseURL, c.accountID, resource)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("User-Agent", c.cfg.Reddit.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logrus.Errorf("Erro na resposta da API. Recurso: %s, Status: %d, Corpo: %s", resource, resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", resp.StatusCode, string(body))
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	if envelope.Data == nil {
		return nil, NewProtocolError(ErrMissingDataField, resource)
	}

	return *envelope.Data, nil
}
