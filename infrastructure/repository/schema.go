package repository

import (
	"fmt"
	"strings"
)

// Column declara uma coluna do destino: nome e tipo da origem. O sufixo "!"
// marca a coluna como obrigatória; o tipo composto "conversion" vira uma
// coluna JSONB com os contadores de click-through e view-through.
type Column struct {
	Name string
	Type string
}

// Schema é o descritor declarativo do destino. A ordem das colunas é fixa e
// dirige tanto a criação das tabelas quanto a carga da tabela de staging.
type Schema []Column

var sqlTypes = map[string]string{
	"int":        "BIGINT",
	"float":      "DOUBLE PRECISION",
	"timestamp":  "TIMESTAMPTZ",
	"str":        "TEXT",
	"conversion": "JSONB",
}

// BaseType retorna o tipo declarado sem o modificador de obrigatoriedade
func (c Column) BaseType() string {
	return strings.TrimSuffix(c.Type, "!")
}

// Required indica se a coluna é obrigatória
func (c Column) Required() bool {
	return strings.HasSuffix(c.Type, "!")
}

// ColumnDefs converte o schema em definições de coluna SQL. Tipos não
// suportados falham: o descritor é a única fonte do DDL.
func (s Schema) ColumnDefs() ([]string, error) {
	defs := make([]string, 0, len(s))

	for _, column := range s {
		sqlType, ok := sqlTypes[column.BaseType()]
		if !ok {
			return nil, NewLoadError(ErrUnsupportedFieldType, fmt.Errorf("coluna %s: tipo %q", column.Name, column.BaseType()))
		}

		def := fmt.Sprintf("%s %s", column.Name, sqlType)
		if column.Required() {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// Names retorna os nomes das colunas na ordem declarada
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, column := range s {
		names = append(names, column.Name)
	}
	return names
}

// mergeKeys é a tupla que identifica unicamente uma linha do destino.
// Todas as demais colunas são atualizadas em caso de conflito.
var mergeKeys = []string{"date", "ad_id", "ad_group_id", "account_id", "campaign_id"}

func isMergeKey(name string) bool {
	for _, key := range mergeKeys {
		if key == name {
			return true
		}
	}
	return false
}

// redditAdsSchema descreve a tabela de performance de anúncios do Reddit.
// As colunas da chave de merge são obrigatórias; o restante acompanha as
// métricas expostas pelo endpoint de relatórios.
var redditAdsSchema = Schema{
	{Name: "spend", Type: "int"},
	{Name: "video_watched_50_percent", Type: "int"},
	{Name: "video_watched_75_percent", Type: "int"},
	{Name: "ecpm", Type: "float"},
	{Name: "video_viewable_impressions", Type: "int"},
	{Name: "date", Type: "timestamp!"},
	{Name: "ctr", Type: "float"},
	{Name: "impressions", Type: "int"},
	{Name: "video_watched_3_seconds", Type: "int"},
	{Name: "cpc", Type: "float"},
	{Name: "video_watched_100_percent", Type: "int"},
	{Name: "video_started", Type: "int"},
	{Name: "video_plays_with_sound", Type: "int"},
	{Name: "ad_id", Type: "str!"},
	{Name: "clicks", Type: "int"},
	{Name: "video_fully_viewable_impressions", Type: "int"},
	{Name: "video_plays_expanded", Type: "int"},
	{Name: "video_watched_95_percent", Type: "int"},
	{Name: "video_watched_10_seconds", Type: "int"},
	{Name: "video_watched_25_percent", Type: "int"},
	{Name: "page_visit", Type: "conversion"},
	{Name: "view_content", Type: "conversion"},
	{Name: "search", Type: "conversion"},
	{Name: "add_to_cart", Type: "conversion"},
	{Name: "add_to_wishlist", Type: "conversion"},
	{Name: "purchase", Type: "conversion"},
	{Name: "lead", Type: "conversion"},
	{Name: "sign_up", Type: "conversion"},
	{Name: "custom", Type: "conversion"},
	{Name: "ad_group_id", Type: "str!"},
	{Name: "ad_name", Type: "str"},
	{Name: "account_id", Type: "str!"},
	{Name: "campaign_id", Type: "str!"},
	{Name: "ad_group_name", Type: "str"},
	{Name: "campaign_name", Type: "str"},
}
