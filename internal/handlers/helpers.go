package handlers

import (
	"github.com/gin-gonic/gin"

	"digisanchar/internal/middleware"
)

// currentUserID reads the user id the auth middleware stored on the context.
func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
