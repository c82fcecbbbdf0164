package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/hr-console-go/hrapi"
	"github.com/linskybing/hr-console-go/response"
	"github.com/linskybing/hr-console-go/services"
)

// writeError maps the service and client error taxonomy onto the
// console's inline-banner contract: everything renders as {"error"}.
func writeError(c *gin.Context, err error) {
	var (
		apiErr        *hrapi.APIError
		validationErr *services.ValidationError
	)
	switch {
	case errors.Is(err, hrapi.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: validationErr.Error()})
	case errors.Is(err, services.ErrFixedField), errors.Is(err, services.ErrEditorClosed):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrStaleEditor):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, response.ErrorResponse{Error: apiErr.Message})
	default:
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: err.Error()})
	}
}
