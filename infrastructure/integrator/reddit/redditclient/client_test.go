package redditclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
)

func clientConfig(baseURL string) *config.Config {
	return &config.Config{
		Reddit: config.Reddit{
			BaseURL:             baseURL,
			UserAgent:           "Turing Data Extraction",
			RequestDelaySeconds: 1,
		},
	}
}

func testCredentials() *redditdomain.Credentials {
	return &redditdomain.Credentials{
		AccountID:   "t2_abc",
		AccessToken: "access-token",
	}
}

func TestRedditClient_GetAds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/t2_abc/ads", r.URL.Path)
		assert.Equal(t, "bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "Turing Data Extraction", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"id": "ad1", "ad_group_id": "g1", "name": "Anúncio 1", "status": "ACTIVE"}]}`))
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL), testCredentials())

	ads, err := client.GetAds(context.Background())
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "ad1", ads[0].ID)
	assert.Equal(t, "g1", ads[0].AdGroupID)
	assert.Equal(t, "Anúncio 1", ads[0].Name)
}

func TestRedditClient_GetReports_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/t2_abc/reports", r.URL.Path)
		assert.Equal(t, "2021-03-01T00:00:00Z", r.URL.Query().Get("starts_at"))
		assert.Equal(t, []string{"date", "ad_id"}, r.URL.Query()["group_by"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"date": "2021-03-01T00:00:00Z", "ad_id": "ad1", "impressions": 10}]}`))
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL), testCredentials())

	startDate := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := client.GetReports(context.Background(), startDate)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ad1", rows[0]["ad_id"])
	assert.Equal(t, float64(10), rows[0]["impressions"])
}

func TestRedditClient_MissingDataField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"notice": "no data here"}`))
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL), testCredentials())

	_, err := client.GetCampaigns(context.Background())
	require.Error(t, err)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.ErrorIs(t, err, ErrMissingDataField)
	assert.Equal(t, "campaigns", protoErr.Resource)
}

func TestRedditClient_HTTPErrorSurfacesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "Forbidden"}`))
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL), testCredentials())

	_, err := client.GetAdGroups(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Forbidden")
}

func TestRedditClient_RateLimiterThrottlesSequentialCalls(t *testing.T) {
	if testing.Short() {
		t.Skip("teste depende de tempo real de espera do limitador")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL), testCredentials())

	// 3 chamadas sequenciais sob o limite de 1 chamada por segundo devem
	// levar ao menos N-1 segundos
	const calls = 3
	started := time.Now()
	for i := 0; i < calls; i++ {
		_, err := client.GetAds(context.Background())
		require.NoError(t, err)
	}
	elapsed := time.Since(started)

	assert.GreaterOrEqual(t, elapsed, (calls-1)*time.Second-50*time.Millisecond)
}

func TestRedditClient_RateLimiterWaitRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(clientConfig(server.URL), testCredentials())

	_, err := client.GetAds(context.Background())
	require.NoError(t, err)

	// A segunda chamada ficaria bloqueada pelo limitador; o cancelamento do
	// contexto a libera com erro
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.GetAds(ctx)
	require.Error(t, err)
}
