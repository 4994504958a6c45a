package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateToken issues an HS256 token binding a user to a tenant. The role
// claim is "user" for regular tenants and "admin" for platform operators.
func GenerateToken(userID string, companyID uuid.UUID, role string, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":        userID,
		"company_id": companyID.String(),
		"role":       role,
		"exp":        time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
