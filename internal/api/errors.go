package api

import (
	"errors"
	"net/http"

	"github.com/family-gazette-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps service errors onto status codes. Anything unexpected is
// logged and hidden behind a generic 500 message.
func respondError(c *gin.Context, log zerolog.Logger, err error, notFound, internal string) {
	var vf *service.ValidationFailure
	switch {
	case errors.As(err, &vf):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": vf.Errors})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(internal)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internal})
	}
}
