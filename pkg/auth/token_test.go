package auth

import (
	"testing"
	"time"

	"github.com/karibu-retail/storefront-gateway/pkg/config"
)

func testJWTConfig() config.AdminJWTConfig {
	return config.AdminJWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-gateway",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintAdminToken(cfg, time.Now(), "admin-1", "Amina")
	if err != nil {
		t.Fatalf("MintAdminToken: %v", err)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAdminToken: %v", err)
	}
	if claims.Subject != "admin-1" {
		t.Errorf("expected subject admin-1, got %q", claims.Subject)
	}
	if claims.AdminName != "Amina" {
		t.Errorf("expected admin name Amina, got %q", claims.AdminName)
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAdminToken(cfg, time.Now(), "admin-1", "")
	if err != nil {
		t.Fatalf("MintAdminToken: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), "admin-1", "")
	if err != nil {
		t.Fatalf("MintAdminToken: %v", err)
	}
	if _, err := ParseAdminToken(cfg, token); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}

func TestMintAdminTokenValidatesConfig(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	if _, err := MintAdminToken(cfg, time.Now(), "admin-1", ""); err == nil {
		t.Fatal("expected error for missing secret")
	}

	cfg = testJWTConfig()
	if _, err := MintAdminToken(cfg, time.Now(), "  ", ""); err == nil {
		t.Fatal("expected error for missing admin id")
	}
}
