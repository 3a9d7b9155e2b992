package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ryanm101/tabletop/internal/db"
)

type createPlayerRequest struct {
	Name string `json:"player_name"`
}

func (s *Server) listPlayers(c *gin.Context) {
	players, err := s.db.ListPlayers(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

func (s *Server) getPlayer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := s.db.GetPlayer(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createPlayer(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid player data", err)
		return
	}
	p, err := s.db.CreatePlayer(c.Request.Context(), req.Name)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) deletePlayer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.db.DeletePlayer(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listGames(c *gin.Context) {
	games, err := s.db.ListGames(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (s *Server) getGame(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	g, err := s.db.GetGame(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) createGame(c *gin.Context) {
	var g db.Game
	if err := c.ShouldBindJSON(&g); err != nil {
		badRequest(c, "invalid game data", err)
		return
	}
	created, err := s.db.CreateGame(c.Request.Context(), g)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteGame(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.db.DeleteGame(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listSessions(c *gin.Context) {
	sessions, err := s.db.ListSessions(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (s *Server) getSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	sess, err := s.db.GetSession(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) createSession(c *gin.Context) {
	var sess db.Session
	if err := c.ShouldBindJSON(&sess); err != nil {
		badRequest(c, "invalid session data", err)
		return
	}
	created, err := s.db.CreateSession(c.Request.Context(), sess)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.db.DeleteSession(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listPlayerStats(c *gin.Context) {
	stats, err := s.db.AllPlayerStats(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getPlayerStats(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	st, err := s.db.PlayerStatsByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) listGameStats(c *gin.Context) {
	stats, err := s.db.AllGameStats(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getGameStats(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	st, err := s.db.GameStatsByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
