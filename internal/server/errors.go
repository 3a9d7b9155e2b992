package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryanm101/tabletop/internal/bgg"
	"github.com/ryanm101/tabletop/internal/catalog"
	"github.com/ryanm101/tabletop/internal/db"
	"github.com/ryanm101/tabletop/internal/logging"
)

// abort writes err as a JSON body with a status matching its sentinel.
func abort(c *gin.Context, err error) {
	status, msg := classify(err)
	body := gin.H{"error": msg}
	if status == http.StatusBadRequest || status == http.StatusConflict {
		body["details"] = err.Error()
	}
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, bgg.ErrNotFound):
		return http.StatusNotFound, "game not found"
	case errors.Is(err, bgg.ErrSearchFailed), errors.Is(err, bgg.ErrDetailsFailed):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, catalog.ErrInvalidID):
		return http.StatusBadRequest, "invalid game id"
	case errors.Is(err, db.ErrNotFound):
		var dbErr *db.Error
		if errors.As(err, &dbErr) && strings.HasPrefix(dbErr.Op, "find ") {
			return http.StatusNotFound, strings.TrimPrefix(dbErr.Op, "find ") + " not found"
		}
		return http.StatusNotFound, "not found"
	case errors.Is(err, db.ErrDuplicate):
		return http.StatusConflict, "already exists"
	case errors.Is(err, db.ErrInvalidArg):
		return http.StatusBadRequest, "invalid input"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// paramID parses the :id path parameter as a positive row id.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
