// Package auth issues and validates the JWT tokens that scope every request
// to a tenant. Tokens carry the company id as a claim; handlers read it back
// from the request context and never trust a company id from the payload.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	companyContextKey contextKey = "company"
	roleContextKey    contextKey = "role"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Middleware returns HTTP middleware that rejects requests without a valid
// Bearer token and injects the token's company id and role into the context.
func Middleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractTokenFromHeader(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := validateToken(tokenString, jwtSecret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			companyID, err := companyIDFromClaims(claims)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), companyContextKey, companyID)
			ctx = context.WithValue(ctx, roleContextKey, roleFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that rejects non-admin tokens. It must run
// after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Role(r.Context()) != RoleAdmin {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CompanyIDFromContext returns the tenant the request is authenticated for.
func CompanyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(companyContextKey).(uuid.UUID)
	return id, ok
}

// Role returns the role claim of the authenticated token, or "" if absent.
func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleContextKey).(string)
	return role
}

func extractTokenFromHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("invalid authorization format: missing Bearer prefix")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return "", fmt.Errorf("invalid authorization format: empty token")
	}

	return tokenString, nil
}

func companyIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["company_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("company_id claim missing")
	}
	companyID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("company_id claim invalid")
	}
	return companyID, nil
}

func roleFromClaims(claims jwt.MapClaims) string {
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return RoleUser
}

// validateToken checks the token signature and returns parsed claims if valid.
func validateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}
