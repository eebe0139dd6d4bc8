package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
)

const insertBatchSize = 500

// AdPerformanceRepository carrega o resultado desnormalizado no warehouse de
// forma idempotente sobre a chave de merge. O ciclo da tabela de staging
// (criar, popular, merge, apagar) pertence exclusivamente a este repositório.
type AdPerformanceRepository interface {
	EnsureTable(ctx context.Context) error
	Save(ctx context.Context, rows []redditdomain.ReportRow) (int64, error)
}

type adPerformanceRepository struct {
	conn      postgres.Queryer
	warehouse config.Warehouse
	schema    Schema
}

func NewAdPerformanceRepository(conn postgres.Queryer, warehouse config.Warehouse) AdPerformanceRepository {
	return &adPerformanceRepository{
		conn:      conn,
		warehouse: warehouse,
		schema:    redditAdsSchema,
	}
}

func (r *adPerformanceRepository) destinationTable() string {
	return fmt.Sprintf("%s.%s", r.warehouse.Dataset, r.warehouse.Table)
}

func (r *adPerformanceRepository) stagingTable() string {
	return fmt.Sprintf("%s.%s", r.warehouse.Dataset, r.warehouse.StagingTable)
}

// EnsureTable cria a tabela de destino se ela não existir. Nunca altera o
// schema de uma tabela existente.
func (r *adPerformanceRepository) EnsureTable(ctx context.Context) error {
	defs, err := r.schema.ColumnDefs()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", r.warehouse.Dataset)); err != nil {
		return NewLoadError(ErrEnsureTable, err)
	}

	createTable := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		r.destinationTable(),
		strings.Join(defs, ",\n    "),
	)
	if _, err := r.conn.Exec(ctx, createTable); err != nil {
		return NewLoadError(ErrEnsureTable, err)
	}

	return nil
}

// Save executa o ciclo completo de carga: staging, merge e limpeza. A tabela
// de staging é apagada mesmo quando o merge falha; o erro original é
// propagado depois da limpeza.
func (r *adPerformanceRepository) Save(ctx context.Context, rows []redditdomain.ReportRow) (affected int64, err error) {
	if err := r.EnsureTable(ctx); err != nil {
		return 0, err
	}

	if err := r.stage(ctx, rows); err != nil {
		return 0, err
	}

	defer func() {
		if dropErr := r.dropStaging(); dropErr != nil {
			logrus.WithError(dropErr).Warn("Erro ao apagar a tabela de staging")
			if err == nil {
				err = dropErr
			}
		}
	}()

	return r.merge(ctx)
}

// stage recria a tabela de staging e carrega as linhas com o conjunto de
// colunas restrito exatamente às do schema, na ordem declarada.
func (r *adPerformanceRepository) stage(ctx context.Context, rows []redditdomain.ReportRow) error {
	defs, err := r.schema.ColumnDefs()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", r.stagingTable())); err != nil {
		return NewLoadError(ErrStagingLoad, err)
	}

	createStaging := fmt.Sprintf(
		"CREATE TABLE %s (\n    %s\n)",
		r.stagingTable(),
		strings.Join(defs, ",\n    "),
	)
	if _, err := r.conn.Exec(ctx, createStaging); err != nil {
		return NewLoadError(ErrStagingLoad, err)
	}

	names := r.schema.Names()
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		insert := squirrel.StatementBuilder.
			Insert(r.stagingTable()).
			Columns(names...).
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows[start:end] {
			values, err := r.rowValues(row)
			if err != nil {
				return err
			}
			insert = insert.Values(values...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := r.conn.Exec(ctx, query, args...); err != nil {
			return NewLoadError(ErrStagingLoad, err)
		}
	}

	logrus.Infof("Carregados %d registros na tabela de staging", len(rows))
	return nil
}

// merge executa um único MERGE atômico entre staging e destino: atualiza as
// colunas fora da chave quando há correspondência e insere a linha completa
// quando não há. Retorna o total de linhas afetadas.
func (r *adPerformanceRepository) merge(ctx context.Context) (int64, error) {
	result, err := r.conn.Exec(ctx, r.mergeStatement())
	if err != nil {
		return 0, NewLoadError(ErrMergeFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, NewLoadError(ErrMergeFailed, err)
	}

	logrus.Infof("Merge concluído: %d registros afetados", affected)
	return affected, nil
}

func (r *adPerformanceRepository) mergeStatement() string {
	names := r.schema.Names()

	joinConds := make([]string, 0, len(mergeKeys))
	for _, key := range mergeKeys {
		joinConds = append(joinConds, fmt.Sprintf("old.%s = tmp.%s", key, key))
	}

	updateCols := make([]string, 0, len(names))
	valueCols := make([]string, 0, len(names))
	for _, name := range names {
		valueCols = append(valueCols, "tmp."+name)
		if !isMergeKey(name) {
			updateCols = append(updateCols, fmt.Sprintf("%s = tmp.%s", name, name))
		}
	}

	return fmt.Sprintf(`MERGE INTO %s AS old
USING %s AS tmp
    ON %s
WHEN MATCHED THEN
    UPDATE SET
        %s
WHEN NOT MATCHED THEN
    INSERT (%s)
    VALUES (%s)`,
		r.destinationTable(),
		r.stagingTable(),
		strings.Join(joinConds, "\n    AND "),
		strings.Join(updateCols, ",\n        "),
		strings.Join(names, ", "),
		strings.Join(valueCols, ", "),
	)
}

// dropStaging apaga a tabela de staging. Usa um contexto próprio para que a
// limpeza aconteça mesmo quando o contexto da execução já foi cancelado.
func (r *adPerformanceRepository) dropStaging() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := r.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", r.stagingTable())); err != nil {
		return NewLoadError(ErrStagingLoad, err)
	}
	return nil
}

// rowValues projeta uma linha na ordem das colunas do schema, convertendo
// cada valor para o tipo do destino
func (r *adPerformanceRepository) rowValues(row redditdomain.ReportRow) ([]interface{}, error) {
	values := make([]interface{}, 0, len(r.schema))

	for _, column := range r.schema {
		value, ok := row[column.Name]
		if !ok || value == nil {
			if column.Required() {
				return nil, NewLoadError(ErrMissingRequiredValue, fmt.Errorf("coluna %s", column.Name))
			}
			values = append(values, nil)
			continue
		}

		converted, err := convertValue(column, value)
		if err != nil {
			return nil, err
		}
		values = append(values, converted)
	}

	return values, nil
}

func convertValue(column Column, value interface{}) (interface{}, error) {
	switch column.BaseType() {
	case "int":
		switch v := value.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case float64:
			return int64(v), nil
		}
	case "float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
	case "timestamp":
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if parsed, err := time.Parse(layout, v); err == nil {
					return parsed, nil
				}
			}
		}
	case "str":
		if v, ok := value.(string); ok {
			return v, nil
		}
	case "conversion":
		return convertConversion(column, value)
	}

	return nil, NewLoadError(ErrValueTypeMismatch, fmt.Errorf("coluna %s: valor com tipo %T", column.Name, value))
}

// convertConversion normaliza o valor composto para o formato JSONB com os
// dois sub-registros de conversão e as três janelas de atribuição
func convertConversion(column Column, value interface{}) (interface{}, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, NewLoadError(ErrValueTypeMismatch, fmt.Errorf("coluna %s: %w", column.Name, err))
	}

	var metric redditdomain.ConversionMetric
	if err := json.Unmarshal(raw, &metric); err != nil {
		return nil, NewLoadError(ErrValueTypeMismatch, fmt.Errorf("coluna %s: %w", column.Name, err))
	}

	normalized, err := json.Marshal(metric)
	if err != nil {
		return nil, NewLoadError(ErrValueTypeMismatch, fmt.Errorf("coluna %s: %w", column.Name, err))
	}

	return normalized, nil
}
