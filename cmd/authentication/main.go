// This is a **mock authentication service**, designed to provide JWT tokens
// for the compliance service, simulating user sign-in. Tokens carry the
// tenant's company id and a role claim.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/rbarros/vigia/internal/compliance/auth"
	"github.com/google/uuid"
)

const (
	defaultPort   = "8081"       // Default port for the authentication service
	defaultSecret = "jwt_secret" // Secret for signing JWT
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token     string `json:"token"`
	CompanyID string `json:"company_id"`
}

// tokenHandler generates a JWT and returns it in JSON response. The company
// and role can be supplied as query parameters; defaults simulate a fresh
// tenant signing in as a regular user.
func tokenHandler(w http.ResponseWriter, r *http.Request) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = defaultSecret
	}

	companyID := uuid.New()
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid company_id", http.StatusBadRequest)
			return
		}
		companyID = parsed
	}

	role := auth.RoleUser
	if r.URL.Query().Get("role") == auth.RoleAdmin {
		role = auth.RoleAdmin
	}

	// Simulate a user ID for the token
	userID := "12345"

	token, err := auth.GenerateToken(userID, companyID, role, secret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{Token: token, CompanyID: companyID.String()}
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		http.Error(w, "Failed to encode token", http.StatusInternalServerError)
	}
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	http.HandleFunc("/token", tokenHandler)

	log.Printf("Authentication service running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
