package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Name:  "bob",
		Email: "bob@example.com",
		Roles: []string{models.RoleUser},
	}
}

func TestMintAndVerifyRoundTrip(t *testing.T) {
	service := NewService(DefaultConfig("test-secret"))
	user := testUser()

	access, err := service.MintAccessToken(user)
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	userID, roles, err := service.VerifyToken(access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != user.ID {
		t.Errorf("userID = %s, want %s", userID, user.ID)
	}
	if len(roles) != 1 || roles[0] != models.RoleUser {
		t.Errorf("roles = %v", roles)
	}
}

func TestVerifyTokenRejectsWrongType(t *testing.T) {
	service := NewService(DefaultConfig("test-secret"))
	refresh, err := service.MintRefreshToken(testUser())
	if err != nil {
		t.Fatalf("MintRefreshToken: %v", err)
	}
	if _, _, err := service.VerifyToken(refresh, TokenTypeAccess); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	minter := NewService(DefaultConfig("secret-a"))
	verifier := NewService(DefaultConfig("secret-b"))

	token, err := minter.MintAccessToken(testUser())
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	if _, _, err := verifier.VerifyToken(token, TokenTypeAccess); err == nil {
		t.Error("token with wrong signature accepted")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	config := DefaultConfig("test-secret")
	config.AccessTTL = -time.Minute
	service := NewService(config)

	token, err := service.MintAccessToken(testUser())
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	if _, _, err := service.VerifyToken(token, TokenTypeAccess); err == nil {
		t.Error("expired token accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	service := NewService(DefaultConfig("test-secret"))

	hash, err := service.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Error("password not hashed")
	}
	if !service.CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if service.CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestRequireAuth(t *testing.T) {
	service := NewService(DefaultConfig("test-secret"))
	user := testUser()
	token, err := service.MintAccessToken(user)
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	var gotUserID uuid.UUID
	handler := service.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/maps", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
	if gotUserID != user.ID {
		t.Errorf("context user id = %s, want %s", gotUserID, user.ID)
	}
}

func TestRequireRole(t *testing.T) {
	service := NewService(DefaultConfig("test-secret"))

	admin := testUser()
	admin.Roles = []string{models.RoleUser, models.RoleAdmin}
	adminToken, _ := service.MintAccessToken(admin)
	userToken, _ := service.MintAccessToken(testUser())

	handler := service.RequireAuth(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rec.Code)
	}
}
