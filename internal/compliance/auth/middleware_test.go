package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestMiddleware(t *testing.T) {
	const (
		validSecret   = "test-secret"
		invalidSecret = "wrong-secret"
	)
	companyID := uuid.New()

	generate := func(secret string, expiresAt time.Time, claims jwt.MapClaims) string {
		if claims == nil {
			claims = jwt.MapClaims{}
		}
		claims["exp"] = expiresAt.Unix()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(secret))
		return tokenString
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name: "valid token",
			authHeader: "Bearer " + generate(validSecret, time.Now().Add(time.Hour), jwt.MapClaims{
				"sub":        "user-1",
				"company_id": companyID.String(),
			}),
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong signature",
			authHeader: "Bearer " + generate(invalidSecret, time.Now().Add(time.Hour), jwt.MapClaims{
				"company_id": companyID.String(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + generate(validSecret, time.Now().Add(-time.Hour), jwt.MapClaims{
				"company_id": companyID.String(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing bearer prefix",
			authHeader: "token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing company claim",
			authHeader: "Bearer " + generate(validSecret, time.Now().Add(time.Hour), jwt.MapClaims{"sub": "user-1"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed company claim",
			authHeader: "Bearer " + generate(validSecret, time.Now().Add(time.Hour), jwt.MapClaims{
				"company_id": "not-a-uuid",
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCompanyID uuid.UUID
			handler := Middleware(validSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCompanyID, _ = CompanyIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/employees", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && gotCompanyID != companyID {
				t.Errorf("expected company %s in context, got %s", companyID, gotCompanyID)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	const secret = "test-secret"
	companyID := uuid.New()

	handler := Middleware(secret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	request := func(role string) int {
		token, err := GenerateToken("user-1", companyID, role, secret)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/companies", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := request(RoleAdmin); code != http.StatusOK {
		t.Errorf("expected admin to pass, got %d", code)
	}
	if code := request(RoleUser); code != http.StatusForbidden {
		t.Errorf("expected user to be rejected, got %d", code)
	}
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	const secret = "round-trip"
	companyID := uuid.New()

	token, err := GenerateToken("user-9", companyID, RoleUser, secret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := validateToken(token, secret)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if claims["sub"] != "user-9" {
		t.Errorf("expected sub user-9, got %v", claims["sub"])
	}
	if claims["company_id"] != companyID.String() {
		t.Errorf("expected company %s, got %v", companyID, claims["company_id"])
	}
	if claims["role"] != RoleUser {
		t.Errorf("expected role %q, got %v", RoleUser, claims["role"])
	}
}
