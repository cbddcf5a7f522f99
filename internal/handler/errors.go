package handler

import (
	"log"
	"net/http"

	"complaint-portal/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError answers with the client-visible message of an apperr error.
// Anything else is logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	status, msg, ok := apperr.Public(err)
	if !ok {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = fallback
	}
	c.JSON(status, gin.H{"error": msg})
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}
