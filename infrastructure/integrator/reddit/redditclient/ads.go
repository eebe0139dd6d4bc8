package redditclient

import (
	"context"
	"fmt"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
)

// GetAds busca todos os anúncios da conta
func (c *RedditClient) GetAds(ctx context.Context) ([]redditdomain.Ad, error) {
	data, err := c.request(ctx, "ads", nil)
	if err != nil {
		return nil, err
	}

	var ads []redditdomain.Ad
	if err := json.Unmarshal(data, &ads); err != nil {
		return nil, fmt.Errorf("erro ao decodificar anúncios: %w", err)
	}

	return ads, nil
}
