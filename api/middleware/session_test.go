package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/karibu-retail/storefront-gateway/pkg/auth"
	"github.com/karibu-retail/storefront-gateway/pkg/config"
)

func TestClientSessionEchoesHeader(t *testing.T) {
	var seen string
	handler := ClientSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Client-Session", "client-abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "client-abc" {
		t.Fatalf("expected session from header, got %q", seen)
	}
	if got := rec.Header().Get("X-Client-Session"); got != "client-abc" {
		t.Fatalf("expected session echoed on response, got %q", got)
	}
}

func TestClientSessionMintsWhenAbsent(t *testing.T) {
	var seen string
	handler := ClientSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatalf("expected a minted session id")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("minted session id is not a uuid: %v", err)
	}
	if got := rec.Header().Get("X-Client-Session"); got != seen {
		t.Fatalf("response header %q does not match context session %q", got, seen)
	}
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	cfg := config.AdminJWTConfig{Secret: "test-secret", Issuer: "storefront-gateway", ExpirationMinutes: 60}
	handler := AdminAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	cfg := config.AdminJWTConfig{Secret: "test-secret", Issuer: "storefront-gateway", ExpirationMinutes: 60}
	handler := AdminAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthSeedsAdminID(t *testing.T) {
	cfg := config.AdminJWTConfig{Secret: "test-secret", Issuer: "storefront-gateway", ExpirationMinutes: 60}
	token, err := pkgAuth.MintAdminToken(cfg, time.Now(), "admin-7", "Amina")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	var seen string
	handler := AdminAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AdminIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if seen != "admin-7" {
		t.Fatalf("expected admin id in context, got %q", seen)
	}
}
