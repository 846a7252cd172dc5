package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/logger"
)

// AuthMiddleware validates the session token issued by the identity
// provider and loads the caller's identity into the request context. The
// role comes from the local user row, never from token claims; a caller
// whose row does not exist yet (first request before sync) gets the
// candidate default so POST /auth/sync can run.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// Browser clients may carry the session in a cookie instead.
			cookie, err := c.Cookie("__session")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or session cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - local development tokens only
				if cfg.AuthJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
				}
				return []byte(cfg.AuthJWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - identity provider tokens, verified via JWKS
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.Debug("token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token missing subject", nil)
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		// The local row is authoritative for the role. Tokens can predate a
		// role change, and the first request of a fresh account predates
		// the row itself.
		role := string(domain.RoleCandidate)
		if user, err := authUC.GetCurrentUser(c.Request.Context(), sub); err == nil && user != nil {
			role = string(user.Role)
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserName), name)
		c.Set(string(domain.KeyUserRole), role)

		// Usecases read identity from the request context with typed keys,
		// so mirror it there as well.
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyUserID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		ctx = context.WithValue(ctx, domain.KeyUserName, name)
		ctx = context.WithValue(ctx, domain.KeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
