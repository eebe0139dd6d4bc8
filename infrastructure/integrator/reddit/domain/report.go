package redditdomain

// ReportRow é uma linha do endpoint de relatórios, agrupada por (date, ad_id).
// O conjunto de colunas varia conforme as métricas habilitadas na conta, então
// a linha é mantida dinâmica e o schema do warehouse decide o que persiste.
type ReportRow map[string]interface{}

// Clone copia a linha. As transformações são funções puras e não podem mutar
// a entrada.
func (r ReportRow) Clone() ReportRow {
	clone := make(ReportRow, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// AttributionWindows são os contadores de conversão por janela de atribuição.
type AttributionWindows struct {
	AttributionWindowDay   int64 `json:"attribution_window_day"`
	AttributionWindowWeek  int64 `json:"attribution_window_week"`
	AttributionWindowMonth int64 `json:"attribution_window_month"`
}

// ConversionMetric é uma métrica de conversão composta: contadores de
// click-through e view-through, cada um com as três janelas de atribuição.
type ConversionMetric struct {
	ClickThroughConversions AttributionWindows `json:"click_through_conversions"`
	ViewThroughConversions  AttributionWindows `json:"view_through_conversions"`
}
