package httpserver

import (
	"errors"
	"net/http"

	"ecom-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP statuses. Business rejections come
// back as 400 with the error text; a missing ledger row for an existing
// product is a data-integrity gap and surfaces as 500.
func writeError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	var insufficient *domain.InsufficientStockError
	var transition *domain.InvalidTransitionError

	switch {
	case errors.As(err, &validation),
		errors.As(err, &insufficient),
		errors.As(err, &transition),
		errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInventoryNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
