// Package metrics exposes Prometheus instruments for tabletop.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database gauges
	PlayersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tabletop_players_total",
		Help: "Total number of players in the database.",
	})
	GamesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tabletop_games_total",
		Help: "Total number of games in the database.",
	})
	SessionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tabletop_sessions_total",
		Help: "Total number of recorded game sessions.",
	})

	// BoardGameGeek client
	BGGRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabletop_bgg_requests_total",
		Help: "Requests sent to the BoardGameGeek API.",
	}, []string{"endpoint", "status"}) // status: HTTP code or "error"

	BGGRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tabletop_bgg_request_duration_seconds",
		Help:    "Duration of BoardGameGeek API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	BGGCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabletop_bgg_cache_hits_total",
		Help: "Game detail lookups served from cache.",
	})
	BGGCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabletop_bgg_cache_misses_total",
		Help: "Game detail lookups that missed the cache.",
	})
	BGGCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tabletop_bgg_cache_entries",
		Help: "Entries currently held in the game detail cache.",
	})

	// HTTP API
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabletop_http_requests_total",
		Help: "HTTP requests handled by the API.",
	}, []string{"method", "route", "status"})
)

// UpdateDBMetrics refreshes gauges that reflect the current state of the database.
func UpdateDBMetrics(db *sql.DB) error {
	var players, games, sessions int

	if err := db.QueryRow("SELECT COUNT(*) FROM players").Scan(&players); err != nil {
		return err
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM games").Scan(&games); err != nil {
		return err
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM game_sessions").Scan(&sessions); err != nil {
		return err
	}

	PlayersTotal.Set(float64(players))
	GamesTotal.Set(float64(games))
	SessionsTotal.Set(float64(sessions))

	return nil
}
