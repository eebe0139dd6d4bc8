package redditdomain

// Registros de consulta usados apenas para desnormalizar o relatório.
// A decodificação tipada já projeta as colunas relevantes de cada endpoint.

type Ad struct {
	ID        string `json:"id"`
	AdGroupID string `json:"ad_group_id"`
	Name      string `json:"name"`
}

type AdGroup struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
}

type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
