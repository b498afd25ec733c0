package handlers

import (
	"net/http"

	"parkops/internal/domain"
	"parkops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps engine errors to HTTP responses. Conflicts keep
// their machine-readable tag (and offending trip) so the dashboard can
// render an actionable message.
func RespondDomainError(c *gin.Context, err error) {
	payload := gin.H{
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(c),
	}
	switch {
	case domain.IsValidation(err):
		payload["code"] = "validation_error"
		c.JSON(http.StatusBadRequest, payload)
	case domain.IsNotFound(err):
		payload["code"] = "not_found"
		c.JSON(http.StatusNotFound, payload)
	case domain.IsConflict(err):
		payload["code"] = "conflict"
		if ce, ok := domain.AsConflict(err); ok {
			if ce.Tag != "" {
				payload["conflictType"] = ce.Tag
			}
			if ce.ConflictTripID != "" {
				payload["conflictTripId"] = ce.ConflictTripID
			}
		}
		c.JSON(http.StatusConflict, payload)
	case domain.IsState(err):
		payload["code"] = "state_error"
		c.JSON(http.StatusUnprocessableEntity, payload)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "something went wrong",
			"code":       "internal_error",
			"request_id": middleware.GetRequestID(c),
		})
	}
}
