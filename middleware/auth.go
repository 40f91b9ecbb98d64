package middleware

import (
	"net/http"
	"strings"

	"reviewdb-api/models"
	"reviewdb-api/permissions"
	"reviewdb-api/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const currentUserKey = "currentUser"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth resolves the caller from a Bearer token when one is present.
// The user record is reloaded from the database so permission checks
// see the current role, not the role at token-issue time. A missing
// header leaves the request anonymous; a bad token is rejected.
func Auth(userRepo repositories.UserRepository, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, "Bearer token required")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests; run after Auth.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the privileged write surfaces.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := permissions.RequireAdmin(CurrentUser(c)); err != nil {
			switch err.(type) {
			case models.ErrorUnauthenticated:
				abortUnauthorized(c, err.Error())
			default:
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": err.Error()})
			}
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": message})
}
