package reddit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/redditclient/mocks"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
)

func TestTransformReport(t *testing.T) {
	report := []redditdomain.ReportRow{
		{
			"date":        "2021-03-02T00:00:00Z",
			"ad_id":       "ad1",
			"impressions": float64(100),
			"clicks":      float64(5),
			"ecpm":        nil,
			// Identificadores rederivados pelos joins
			"ad_group_id": "stale-group",
			"campaign_id": "stale-campaign",
			"account_id":  "stale-account",
		},
		{
			"date":        "2021-03-01T00:00:00Z",
			"ad_id":       "ad1",
			"impressions": float64(80),
			"clicks":      float64(3),
			"ecpm":        nil,
			"ad_group_id": "stale-group",
			"campaign_id": "stale-campaign",
			"account_id":  "stale-account",
		},
	}

	rows, err := TransformReport(report)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.NotContains(t, row, "ad_group_id")
		assert.NotContains(t, row, "campaign_id")
		assert.NotContains(t, row, "account_id")
		// Coluna nula em todas as linhas é descartada
		assert.NotContains(t, row, "ecpm")

		date, ok := row["date"].(time.Time)
		require.True(t, ok)
		assert.Equal(t, time.UTC, date.Location())
	}

	// A entrada não pode ser mutada
	assert.Contains(t, report[0], "ad_group_id")
	assert.Equal(t, "2021-03-02T00:00:00Z", report[0]["date"])
}

func TestTransformReport_InvalidDate(t *testing.T) {
	report := []redditdomain.ReportRow{
		{"date": "03/01/2021", "ad_id": "ad1"},
	}

	_, err := TransformReport(report)
	require.Error(t, err)
}

func TestJoinLookups_EndToEnd(t *testing.T) {
	report := []redditdomain.ReportRow{
		{
			"date":        "2021-03-02T00:00:00Z",
			"ad_id":       "ad1",
			"impressions": float64(100),
			"ad_group_id": "stale-group",
			"campaign_id": "stale-campaign",
			"account_id":  "stale-account",
		},
		{
			"date":        "2021-03-01T00:00:00Z",
			"ad_id":       "ad1",
			"impressions": float64(80),
			"ad_group_id": "stale-group",
			"campaign_id": "stale-campaign",
			"account_id":  "stale-account",
		},
	}
	ads := []redditdomain.Ad{
		{ID: "ad1", AdGroupID: "g1", Name: "Anúncio 1"},
	}
	adGroups := []redditdomain.AdGroup{
		{ID: "g1", AccountID: "t2_abc", CampaignID: "c1", Name: "Grupo 1"},
	}
	campaigns := []redditdomain.Campaign{
		{ID: "c1", Name: "Campanha 1"},
	}

	rows, err := TransformReport(report)
	require.NoError(t, err)

	result := JoinLookups(rows, ads, adGroups, campaigns)
	require.Len(t, result, 2)

	// Ordenado por data ascendente
	first, _ := result[0]["date"].(time.Time)
	second, _ := result[1]["date"].(time.Time)
	assert.True(t, first.Before(second))
	assert.Equal(t, float64(80), result[0]["impressions"])

	for _, row := range result {
		assert.Equal(t, "Anúncio 1", row["ad_name"])
		assert.Equal(t, "Grupo 1", row["ad_group_name"])
		assert.Equal(t, "Campanha 1", row["campaign_name"])
		// Identificadores vêm exclusivamente dos joins
		assert.Equal(t, "g1", row["ad_group_id"])
		assert.Equal(t, "t2_abc", row["account_id"])
		assert.Equal(t, "c1", row["campaign_id"])
	}
}

func TestJoinLookups_DropsUnmatchedRows(t *testing.T) {
	rows := []redditdomain.ReportRow{
		{"date": time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "ad_id": "ad1"},
		{"date": time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "ad_id": "ad-unknown"},
		{"date": time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC), "ad_id": "ad-orphan-group"},
	}
	ads := []redditdomain.Ad{
		{ID: "ad1", AdGroupID: "g1", Name: "Anúncio 1"},
		{ID: "ad-orphan-group", AdGroupID: "g-unknown", Name: "Anúncio órfão"},
	}
	adGroups := []redditdomain.AdGroup{
		{ID: "g1", AccountID: "t2_abc", CampaignID: "c1", Name: "Grupo 1"},
	}
	campaigns := []redditdomain.Campaign{
		{ID: "c1", Name: "Campanha 1"},
	}

	result := JoinLookups(rows, ads, adGroups, campaigns)

	require.Len(t, result, 1)
	assert.Equal(t, "ad1", result[0]["ad_id"])
}

func TestRedditIntegrator_GetResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	startDate := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	client.EXPECT().
		GetReports(gomock.Any(), startDate).
		Return([]redditdomain.ReportRow{
			{"date": "2021-03-01T00:00:00Z", "ad_id": "ad1", "impressions": float64(80), "ad_group_id": "x", "campaign_id": "x", "account_id": "x"},
		}, nil)
	client.EXPECT().
		GetAds(gomock.Any()).
		Return([]redditdomain.Ad{{ID: "ad1", AdGroupID: "g1", Name: "Anúncio 1"}}, nil)
	client.EXPECT().
		GetAdGroups(gomock.Any()).
		Return([]redditdomain.AdGroup{{ID: "g1", AccountID: "t2_abc", CampaignID: "c1", Name: "Grupo 1"}}, nil)
	client.EXPECT().
		GetCampaigns(gomock.Any()).
		Return([]redditdomain.Campaign{{ID: "c1", Name: "Campanha 1"}}, nil)

	integrator := New(&config.Config{}, client)

	result, err := integrator.GetResult(context.Background(), startDate)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Campanha 1", result[0]["campaign_name"])
	assert.Equal(t, "t2_abc", result[0]["account_id"])
}

func TestRedditIntegrator_GetResult_PropagatesClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	startDate := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	client.EXPECT().
		GetReports(gomock.Any(), startDate).
		Return(nil, assert.AnError)

	integrator := New(&config.Config{}, client)

	_, err := integrator.GetResult(context.Background(), startDate)
	require.ErrorIs(t, err, assert.AnError)
}
