package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/middleware"
)

// respondWithAppError maps a service failure to its transport status code.
// Anything outside the taxonomy is reported as a generic internal error so
// no internals leak to the caller.
func respondWithAppError(c *gin.Context, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	switch kind {
	case apperr.KindNotFound:
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case apperr.KindForbidden:
		middleware.RespondWithError(c, http.StatusForbidden, err.Error())
	default:
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
}
