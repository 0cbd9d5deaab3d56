package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/domain"
)

// respondError maps a domain error to an HTTP status and a machine-checkable
// kind. The human-readable message rides alongside the kind.
func respondError(c *gin.Context, err error) {
	status, kind := classify(err)
	c.JSON(status, gin.H{"kind": kind, "error": err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return http.StatusConflict, "capacity"
	case errors.Is(err, domain.ErrConsistency):
		return http.StatusInternalServerError, "consistency"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
