package redditclient

import (
	"context"
	"fmt"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
)

// GetCampaigns busca todas as campanhas da conta
func (c *RedditClient) GetCampaigns(ctx context.Context) ([]redditdomain.Campaign, error) {
	data, err := c.request(ctx, "campaigns", nil)
	if err != nil {
		return nil, err
	}

	var campaigns []redditdomain.Campaign
	if err := json.Unmarshal(data, &campaigns); err != nil {
		return nil, fmt.Errorf("erro ao decodificar campanhas: %w", err)
	}

	return campaigns, nil
}
