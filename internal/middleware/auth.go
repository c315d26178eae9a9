package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	contextUserIDKey   = "userId"
	contextUsernameKey = "username"
)

// Claims is the JWT payload expected on incoming requests.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the Bearer token and stores the caller identity in
// the request context.
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondWithError(c, http.StatusUnauthorized, "Token not provided")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token format")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUsernameKey, claims.Username)
		c.Next()
	}
}

// RequireAdmin allows only the configured administrator through. It must run
// after AuthMiddleware.
func RequireAdmin(adminUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok || userID != adminUserID {
			RespondWithError(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated caller's user id.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(contextUserIDKey)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetUsername returns the authenticated caller's username.
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(contextUsernameKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}
