package handlers

import (
	"errors"
	"net/http"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInternal = "Something went wrong while processing the request"

// writeError maps domain errors to HTTP status codes. Anything unclassified
// is logged and hidden behind a generic message.
func (h *Handler) writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, e.ErrBadRequest), errors.Is(err, e.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, e.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, e.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrConflict):
		status = http.StatusConflict
	default:
		h.logger.Error("Internal server error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}
	c.JSON(status, gin.H{"error": e.Message(err)})
}

// identity returns the caller resolved by the auth middleware. A route
// mounted without it is a wiring bug and answers 500.
func (h *Handler) identity(c *gin.Context) (*models.Identity, bool) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		h.writeError(c, errors.New("identity missing from request context"))
	}
	return identity, ok
}
