package handlers

import (
	"errors"
	"log"
	"net/http"

	"quizzy/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the API's status codes. Unknown
// errors are logged with detail but leave the process as a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func sessionEmail(c *gin.Context) string {
	email, _ := c.Get("email")
	if s, ok := email.(string); ok {
		return s
	}
	return ""
}
