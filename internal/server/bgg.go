package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryanm101/tabletop/internal/catalog"
)

func (s *Server) searchBGG(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	results, err := s.bgg.SearchGames(c.Request.Context(), q)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// bggID reads and checks the :id parameter of the BGG routes.
func bggID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !catalog.ValidID(id) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return "", false
	}
	return id, true
}

func (s *Server) getBGGGame(c *gin.Context) {
	id, ok := bggID(c)
	if !ok {
		return
	}
	d, err := s.bgg.GetGameDetails(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) convertBGGGame(c *gin.Context) {
	id, ok := bggID(c)
	if !ok {
		return
	}
	rec, err := s.catalog.Preview(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) importBGGGame(c *gin.Context) {
	id, ok := bggID(c)
	if !ok {
		return
	}
	game, created, err := s.catalog.ImportGame(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, game)
}
