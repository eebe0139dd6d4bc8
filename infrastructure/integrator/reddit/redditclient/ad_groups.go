package redditclient

import (
	"context"
	"fmt"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
)

// GetAdGroups busca todos os grupos de anúncios da conta
func (c *RedditClient) GetAdGroups(ctx context.Context) ([]redditdomain.AdGroup, error) {
	data, err := c.request(ctx, "ad_groups", nil)
	if err != nil {
		return nil, err
	}

	var adGroups []redditdomain.AdGroup
	if err := json.Unmarshal(data, &adGroups); err != nil {
		return nil, fmt.Errorf("erro ao decodificar grupos de anúncios: %w", err)
	}

	return adGroups, nil
}
