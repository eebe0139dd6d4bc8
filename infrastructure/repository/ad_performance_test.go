package repository

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
)

func testWarehouse() config.Warehouse {
	return config.Warehouse{
		Dataset:      "reddit",
		Table:        "redditads",
		StagingTable: "redditads_tmp",
	}
}

func testRepository(t *testing.T) (*adPerformanceRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &adPerformanceRepository{
		conn:      &postgres.Connection{DB: db},
		warehouse: testWarehouse(),
		schema:    redditAdsSchema,
	}
	return repo, mock
}

func testRow() redditdomain.ReportRow {
	return redditdomain.ReportRow{
		"date":        time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		"ad_id":       "ad1",
		"ad_group_id": "g1",
		"account_id":  "t2_abc",
		"campaign_id": "c1",
		"impressions": float64(100),
		"ctr":         0.5,
	}
}

func TestAdPerformanceRepository_Save(t *testing.T) {
	repo, mock := testRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE SCHEMA IF NOT EXISTS reddit")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS reddit.redditads")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("MERGE INTO reddit.redditads AS old")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Save(context.Background(), []redditdomain.ReportRow{testRow(), testRow()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdPerformanceRepository_Save_DropsStagingOnMergeFailure(t *testing.T) {
	repo, mock := testRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE SCHEMA IF NOT EXISTS reddit")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS reddit.redditads")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("MERGE INTO reddit.redditads AS old")).
		WillReturnError(assert.AnError)
	// A limpeza da staging acontece mesmo com o merge falhando
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS reddit.redditads_tmp")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Save(context.Background(), []redditdomain.ReportRow{testRow()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMergeFailed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdPerformanceRepository_MergeStatement(t *testing.T) {
	repo, _ := testRepository(t)

	stmt := repo.mergeStatement()

	assert.Contains(t, stmt, "MERGE INTO reddit.redditads AS old")
	assert.Contains(t, stmt, "USING reddit.redditads_tmp AS tmp")

	for _, key := range mergeKeys {
		assert.Contains(t, stmt, "old."+key+" = tmp."+key)
	}

	matched := stmt[strings.Index(stmt, "WHEN MATCHED"):strings.Index(stmt, "WHEN NOT MATCHED")]
	for _, key := range mergeKeys {
		// Chaves de merge nunca aparecem na cláusula de UPDATE
		assert.NotContains(t, matched, key+" = tmp."+key)
	}
	assert.Contains(t, matched, "impressions = tmp.impressions")

	notMatched := stmt[strings.Index(stmt, "WHEN NOT MATCHED"):]
	for _, name := range redditAdsSchema.Names() {
		assert.Contains(t, notMatched, "tmp."+name)
	}
}

func TestAdPerformanceRepository_RowValues(t *testing.T) {
	repo, _ := testRepository(t)

	t.Run("projeta na ordem do schema com nulos para colunas ausentes", func(t *testing.T) {
		values, err := repo.rowValues(testRow())
		require.NoError(t, err)
		require.Len(t, values, len(redditAdsSchema))

		byName := make(map[string]interface{}, len(values))
		for i, column := range redditAdsSchema {
			byName[column.Name] = values[i]
		}

		assert.Equal(t, int64(100), byName["impressions"])
		assert.Equal(t, 0.5, byName["ctr"])
		assert.Equal(t, "ad1", byName["ad_id"])
		assert.Nil(t, byName["clicks"])
		assert.Nil(t, byName["purchase"])
	})

	t.Run("chave de merge ausente falha", func(t *testing.T) {
		row := testRow()
		delete(row, "account_id")

		_, err := repo.rowValues(row)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRequiredValue)
		assert.Contains(t, err.Error(), "account_id")
	})

	t.Run("valor com tipo incompatível falha", func(t *testing.T) {
		row := testRow()
		row["impressions"] = "cem"

		_, err := repo.rowValues(row)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTypeMismatch)
	})
}

func TestConvertValue_Timestamp(t *testing.T) {
	column := Column{Name: "date", Type: "timestamp!"}

	parsed, err := convertValue(column, "2021-03-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = convertValue(column, "2021-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	_, err = convertValue(column, "01/03/2021")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueTypeMismatch)
}

func TestConvertConversion_NormalizesShape(t *testing.T) {
	column := Column{Name: "purchase", Type: "conversion"}

	// Campos extras da API são descartados; os sub-registros e as janelas
	// de atribuição sempre aparecem no JSON persistido
	value := map[string]interface{}{
		"click_through_conversions": map[string]interface{}{
			"attribution_window_day": float64(3),
			"unexpected_field":       "dropped",
		},
	}

	normalized, err := convertConversion(column, value)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"click_through_conversions": {
			"attribution_window_day": 3,
			"attribution_window_week": 0,
			"attribution_window_month": 0
		},
		"view_through_conversions": {
			"attribution_window_day": 0,
			"attribution_window_week": 0,
			"attribution_window_month": 0
		}
	}`, string(normalized.([]byte)))
}

func TestConvertConversion_RejectsNonObjectValue(t *testing.T) {
	column := Column{Name: "purchase", Type: "conversion"}

	_, err := convertConversion(column, "not an object")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueTypeMismatch)
}
