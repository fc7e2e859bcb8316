package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID — ID юзера, положенный в контекст AuthMiddleware-ом
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("userId")
	uid, err := uuid.Parse(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return uuid.Nil, false
	}
	return uid, true
}
