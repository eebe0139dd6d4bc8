package reddit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/redditclient"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
)

// Colunas de identificadores descartadas do relatório: os valores canônicos
// vêm dos joins com ads, ad_groups e campaigns.
var reportDroppedColumns = []string{"ad_group_id", "campaign_id", "account_id"}

type RedditIntegrator struct {
	cfg    *config.Config
	Client redditclient.Client
}

func New(cfg *config.Config, client redditclient.Client) *RedditIntegrator {
	return &RedditIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// GetResult busca as quatro coleções da API, normaliza o relatório e o
// desnormaliza com os joins de anúncio, grupo e campanha. O resultado sai
// ordenado por data ascendente.
func (s *RedditIntegrator) GetResult(ctx context.Context, startDate time.Time) ([]redditdomain.ReportRow, error) {
	report, err := s.Client.GetReports(ctx, startDate)
	if err != nil {
		logrus.WithError(err).Error("reddit: failed to get report rows from API")
		return nil, err
	}

	ads, err := s.Client.GetAds(ctx)
	if err != nil {
		logrus.WithError(err).Error("reddit: failed to get ads from API")
		return nil, err
	}

	adGroups, err := s.Client.GetAdGroups(ctx)
	if err != nil {
		logrus.WithError(err).Error("reddit: failed to get ad groups from API")
		return nil, err
	}

	campaigns, err := s.Client.GetCampaigns(ctx)
	if err != nil {
		logrus.WithError(err).Error("reddit: failed to get campaigns from API")
		return nil, err
	}

	rows, err := TransformReport(report)
	if err != nil {
		return nil, err
	}

	result := JoinLookups(rows, ads, adGroups, campaigns)

	logrus.WithFields(logrus.Fields{
		"report_rows": len(report),
		"result_rows": len(result),
	}).Info("reddit: result set built")

	return result, nil
}

// TransformReport normaliza as linhas do relatório: remove os identificadores
// que serão rederivados pelos joins, descarta colunas totalmente ausentes e
// converte a coluna date para valor de data.
func TransformReport(report []redditdomain.ReportRow) ([]redditdomain.ReportRow, error) {
	rows := make([]redditdomain.ReportRow, 0, len(report))
	for _, row := range report {
		clone := row.Clone()
		for _, column := range reportDroppedColumns {
			delete(clone, column)
		}
		rows = append(rows, clone)
	}

	dropAllNullColumns(rows)

	for _, row := range rows {
		date, err := parseReportDate(row["date"])
		if err != nil {
			return nil, err
		}
		row["date"] = date
	}

	return rows, nil
}

// dropAllNullColumns remove colunas cujo valor é nulo ou ausente em todas as
// linhas. Métricas desabilitadas na conta chegam assim do endpoint.
func dropAllNullColumns(rows []redditdomain.ReportRow) {
	columns := make(map[string]bool)
	for _, row := range rows {
		for column, value := range row {
			if value != nil {
				columns[column] = true
			} else if _, seen := columns[column]; !seen {
				columns[column] = false
			}
		}
	}

	for column, hasValue := range columns {
		if hasValue {
			continue
		}
		for _, row := range rows {
			delete(row, column)
		}
	}
}

func parseReportDate(value interface{}) (time.Time, error) {
	raw, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("coluna date ausente ou com tipo inesperado: %v", value)
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if date, err := time.Parse(layout, raw); err == nil {
			return date.Truncate(24 * time.Hour), nil
		}
	}

	return time.Time{}, fmt.Errorf("erro ao converter a coluna date: %q", raw)
}

// JoinLookups aplica os inner joins do relatório com anúncios, grupos e
// campanhas, renomeando id/name para os nomes de coluna do destino. Linhas
// sem correspondência em alguma das consultas são descartadas e contadas.
func JoinLookups(
	rows []redditdomain.ReportRow,
	ads []redditdomain.Ad,
	adGroups []redditdomain.AdGroup,
	campaigns []redditdomain.Campaign,
) []redditdomain.ReportRow {
	adsByID := make(map[string]redditdomain.Ad, len(ads))
	for _, ad := range ads {
		adsByID[ad.ID] = ad
	}

	adGroupsByID := make(map[string]redditdomain.AdGroup, len(adGroups))
	for _, adGroup := range adGroups {
		adGroupsByID[adGroup.ID] = adGroup
	}

	campaignsByID := make(map[string]redditdomain.Campaign, len(campaigns))
	for _, campaign := range campaigns {
		campaignsByID[campaign.ID] = campaign
	}

	result := make([]redditdomain.ReportRow, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		adID, _ := row["ad_id"].(string)

		ad, ok := adsByID[adID]
		if !ok {
			dropped++
			continue
		}

		adGroup, ok := adGroupsByID[ad.AdGroupID]
		if !ok {
			dropped++
			continue
		}

		campaign, ok := campaignsByID[adGroup.CampaignID]
		if !ok {
			dropped++
			continue
		}

		joined := row.Clone()
		joined["ad_name"] = ad.Name
		joined["ad_group_id"] = adGroup.ID
		joined["ad_group_name"] = adGroup.Name
		joined["account_id"] = adGroup.AccountID
		joined["campaign_id"] = campaign.ID
		joined["campaign_name"] = campaign.Name
		result = append(result, joined)
	}

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped_rows": dropped,
			"joined_rows":  len(result),
		}).Warn("reddit: report rows dropped by lookup join")
	}

	sort.SliceStable(result, func(i, j int) bool {
		left, _ := result[i]["date"].(time.Time)
		right, _ := result[j]["date"].(time.Time)
		return left.Before(right)
	})

	return result
}
