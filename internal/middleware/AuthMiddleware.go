package middleware

import (
	"net/http"

	"sidequest/internal/domain"
	"sidequest/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware достает сессионную куку и проверяет токен.
// Любая проблема с токеном — 401 до единого похода в БД.
func AuthMiddleware(verifier *security.SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(security.SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session cookie is required"})
			return
		}

		session, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("userId", session.UserID.String())
		c.Set("role", session.Role)

		c.Next()
	}
}

// AdminOnly пускает либо сессию с ролью admin, либо запрос с серверным API-ключом
func AdminOnly(verifier *security.SessionVerifier, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" && c.GetHeader("X-API-Key") == apiKey {
			c.Next()
			return
		}

		token, err := c.Cookie(security.SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session cookie is required"})
			return
		}
		session, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		if session.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}

		c.Set("userId", session.UserID.String())
		c.Set("role", session.Role)
		c.Next()
	}
}
