package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackswap/snackswap/internal/common"
)

// writeError maps service errors to HTTP statuses. Unmapped errors are
// logged and reported as a 500 without leaking detail.
func (s *Server) writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrUsernameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrEmailNotConfirmed),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrNotOwner),
		errors.Is(err, common.ErrNotParticipant):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrEmailNotFound),
		errors.Is(err, common.ErrCodeInvalidOrExpired),
		errors.Is(err, common.ErrSelfRequest),
		errors.Is(err, common.ErrNotPending):
		status = http.StatusBadRequest
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
