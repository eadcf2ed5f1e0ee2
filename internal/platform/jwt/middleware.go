package jwtmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"library_backend/internal/feature/auth/domain/entity"
)

const (
	// ContextUser is the gin context key holding the resolved *entity.User.
	ContextUser = "currentUser"
	// ContextUserID is the gin context key holding the resolved user's ID.
	ContextUserID = "userID"
	// ContextSessionID is the gin context key holding the session token value.
	ContextSessionID = "sessionID"

	// SessionCookieName is the cookie carrying the signed session token for
	// browser clients. API clients use the Authorization header instead.
	SessionCookieName = "session_token"
)

// SessionResolver resolves a session ID to the user it belongs to.
// Following Go convention: the interface is defined by the consumer (this
// middleware), not the provider (the auth usecase). Any error reads as
// "not logged in": missing, revoked, expired sessions and deleted users alike.
type SessionResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware function that validates the signed
// session token and restricts access to authenticated users only.
// On success it injects the current user and session ID into the context so
// handlers never re-resolve them within the same request.
func AuthRequired(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get the token: Authorization header first, session cookie second
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				tokenStr = cookie
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify the JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Extract the session ID claim
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sid, ok := claims["sid"].(string)
		if !ok || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 5. Resolve the server-side session to a user.
		// This runs on every request: a revoked or expired session, or a
		// deleted user, must read as "not logged in" immediately.
		user, err := resolver.CurrentUser(c.Request.Context(), sid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextSessionID, sid)

		// 6. Pass control to the next handler
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
