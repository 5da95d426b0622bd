package middleware

import (
	"net/http"
	"strings"

	"quizzy/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const SessionCookie = "quizzy_session"

// LoginRequired rejects the request with a uniform 401 before any handler
// logic runs unless a valid session is presented, either as the session
// cookie or a bearer token. On success the identity claims land in the gin
// context under "email" and "is_admin".
func LoginRequired(sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c, sessionSecret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// SessionOptional resolves the session when one is present but lets
// anonymous requests through; scoring uses it to decide whether to record
// an attempt.
func SessionOptional(sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := sessionClaims(c, sessionSecret); ok {
			c.Set("email", claims.Email)
			c.Set("is_admin", claims.IsAdmin)
		}
		c.Next()
	}
}

func sessionClaims(c *gin.Context, sessionSecret string) (*services.SessionClaims, bool) {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return nil, false
		}
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}

	claims := &services.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(sessionSecret), nil
	})
	if err != nil || !token.Valid || claims.Email == "" {
		return nil, false
	}
	return claims, true
}
