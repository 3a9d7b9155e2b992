package metrics

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBGGRequests_Counter(t *testing.T) {
	before := testutil.ToFloat64(BGGRequests.WithLabelValues("search", "200"))

	BGGRequests.WithLabelValues("search", "200").Inc()
	BGGRequests.WithLabelValues("thing", "error").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(BGGRequests.WithLabelValues("search", "200")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(BGGRequests.WithLabelValues("thing", "error")), float64(1))
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(BGGCacheHits)
	misses := testutil.ToFloat64(BGGCacheMisses)

	BGGCacheHits.Inc()
	BGGCacheMisses.Add(2)

	assert.Equal(t, hits+1, testutil.ToFloat64(BGGCacheHits))
	assert.Equal(t, misses+2, testutil.ToFloat64(BGGCacheMisses))
}

func TestGauges_Exist(t *testing.T) {
	BGGCacheEntries.Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(BGGCacheEntries))

	PlayersTotal.Set(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(PlayersTotal))
}

func TestUpdateDBMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM players")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM games")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM game_sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))

	require.NoError(t, UpdateDBMetrics(db))

	assert.Equal(t, float64(5), testutil.ToFloat64(PlayersTotal))
	assert.Equal(t, float64(12), testutil.ToFloat64(GamesTotal))
	assert.Equal(t, float64(40), testutil.ToFloat64(SessionsTotal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDBMetrics_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM players")).
		WillReturnError(assert.AnError)

	assert.ErrorIs(t, UpdateDBMetrics(db), assert.AnError)
}
