package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	parkIDKey = "park_id"
	userIDKey = "user_id"
	roleKey   = "role"
)

// AuthRequired validates the bearer token and stashes the caller's park
// scope into the context. Business rules past this point trust park_id.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		parkID, _ := claims[parkIDKey].(string)
		if parkID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no park scope"})
			return
		}

		c.Set(parkIDKey, parkID)
		if v, ok := claims[userIDKey].(string); ok {
			c.Set(userIDKey, v)
		}
		if v, ok := claims[roleKey].(string); ok {
			c.Set(roleKey, v)
		}
		c.Next()
	}
}

// GetParkID extracts the authenticated park scope from gin context.
func GetParkID(c *gin.Context) string {
	if v, ok := c.Get(parkIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
