package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

// serviceError maps domain errors onto HTTP status codes. Anything
// unrecognized is a 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrTokenNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAction):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrReplenishmentNotNeeded):
		errorResponse(c, http.StatusConflict, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
