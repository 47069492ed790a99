package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenParser resolves a signed token to a verified user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()

		c.Next()

		latency := time.Since(t)
		log.Printf("Latency: %v | Status: %v | Method: %s | Path: %s",
			latency,
			c.Writer.Status(),
			c.Request.Method,
			c.Request.URL.Path,
		)
	}
}

// AuthMiddleware resolves the caller's identity and stores it on the request
// context under "userID". Everything behind it trusts that identity.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			c.Abort()
			return
		}

		userID, err := tokens.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
