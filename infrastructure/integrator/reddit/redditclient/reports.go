package redditclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
)

// StartsAtFormat é o formato de data exigido pelo filtro starts_at do
// endpoint de relatórios
const StartsAtFormat = "2006-01-02T00:00:00Z"

// GetReports busca as linhas de relatório agrupadas por (date, ad_id) a
// partir da data informada
func (c *RedditClient) GetReports(ctx context.Context, startDate time.Time) ([]redditdomain.ReportRow, error) {
	params := url.Values{}
	params.Set("starts_at", startDate.Format(StartsAtFormat))
	params.Add("group_by", "date")
	params.Add("group_by", "ad_id")

	data, err := c.request(ctx, "reports", params)
	if err != nil {
		return nil, err
	}

	var rows []redditdomain.ReportRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("erro ao decodificar relatório: %w", err)
	}

	return rows, nil
}
