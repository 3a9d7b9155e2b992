// Package server exposes the collection and the BGG client over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ryanm101/tabletop/internal/bgg"
	"github.com/ryanm101/tabletop/internal/catalog"
	"github.com/ryanm101/tabletop/internal/db"
	"github.com/ryanm101/tabletop/internal/logging"
	"github.com/ryanm101/tabletop/internal/metrics"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins []string
}

// Server handles HTTP requests.
type Server struct {
	db      *db.DB
	bgg     bgg.Provider
	catalog *catalog.Service
	engine  *gin.Engine
}

// New creates a server backed by d, looking games up through p.
func New(d *db.DB, p bgg.Provider, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		db:      d,
		bgg:     p,
		catalog: catalog.NewService(d, p, nil),
		engine:  gin.New(),
	}
	s.setupRoutes(opts)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) setupRoutes(opts Options) {
	r := s.engine
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())
	r.Use(requestMetrics())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)

	api := r.Group("/api")
	{
		api.GET("/players", s.listPlayers)
		api.POST("/players", s.createPlayer)
		api.GET("/players/:id", s.getPlayer)
		api.DELETE("/players/:id", s.deletePlayer)

		api.GET("/games", s.listGames)
		api.POST("/games", s.createGame)
		api.GET("/games/:id", s.getGame)
		api.DELETE("/games/:id", s.deleteGame)

		api.GET("/game-sessions", s.listSessions)
		api.POST("/game-sessions", s.createSession)
		api.GET("/game-sessions/:id", s.getSession)
		api.DELETE("/game-sessions/:id", s.deleteSession)

		api.GET("/player-stats", s.listPlayerStats)
		api.GET("/player-stats/:id", s.getPlayerStats)
		api.GET("/game-stats", s.listGameStats)
		api.GET("/game-stats/:id", s.getGameStats)
	}

	b := api.Group("/bgg")
	{
		b.GET("/search", s.searchBGG)
		b.GET("/game/:id", s.getBGGGame)
		b.GET("/game/:id/convert", s.convertBGGGame)
		b.POST("/import/:id", s.importBGGGame)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.Conn().PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMetrics(c *gin.Context) {
	if err := metrics.UpdateDBMetrics(s.db.Conn()); err != nil {
		logging.Warn("failed to update metrics", "error", err)
	}
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
