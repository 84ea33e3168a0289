package middleware

import (
	"context"
	"crypto/rsa"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/funaab-ict/clearance-service/internal/core/services"
)

type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	redis     *redis.Client
	breaker   *gobreaker.CircuitBreaker
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, redisClient *redis.Client, breaker *gobreaker.CircuitBreaker) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		redis:     redisClient,
		breaker:   breaker,
	}
}

type contextKey string

const (
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// RoleFromContext returns the authenticated role, if any.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// RequireRole authenticates the bearer token, rejects denylisted tokens and
// requires the token role to be one of roles. Username and role are placed on
// the request context for handlers.
func (m *AuthMiddleware) RequireRole(roles []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}
		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !token.Valid {
			log.Printf("Token rejected: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		username, ok := claims["sub"].(string)
		if !ok || username == "" {
			http.Error(w, "invalid token: missing subject", http.StatusUnauthorized)
			return
		}
		userRole, ok := claims["role"].(string)
		if !ok || userRole == "" {
			http.Error(w, "invalid token: missing role", http.StatusUnauthorized)
			return
		}

		if m.isDenylisted(r.Context(), tokenString) {
			http.Error(w, "token revoked", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}
		if !allowed {
			log.Printf("Role mismatch: required one of %v, got %s", roles, userRole)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, username)
		ctx = context.WithValue(ctx, RoleKey, userRole)
		next(w, r.WithContext(ctx))
	}
}

// isDenylisted checks the token against the Redis denylist through the
// circuit breaker. When Redis is unavailable the check fails open so that a
// cache outage does not lock every user out.
func (m *AuthMiddleware) isDenylisted(ctx context.Context, tokenString string) bool {
	if m.redis == nil {
		return false
	}
	result, err := m.breaker.Execute(func() (any, error) {
		return m.redis.Exists(ctx, services.DenylistKey(tokenString)).Result()
	})
	if err != nil {
		log.Printf("Denylist check unavailable, allowing token: %v", err)
		return false
	}
	count, _ := result.(int64)
	return count > 0
}
