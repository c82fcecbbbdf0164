package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/hr-console-go/response"
	"github.com/linskybing/hr-console-go/session"
)

// RequireSession gates the console API on a stored token pair. Only
// presence is checked here; the HR service is the authority on token
// validity, and the client's refresh-and-retry path handles expiry.
func RequireSession(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Tokens().Valid() {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
