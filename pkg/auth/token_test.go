package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/marivelle/catalog-backend/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "catalog",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, 42)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("decode subject: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}

	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "catalog",
		ExpirationMinutes: 10,
	}

	token, err := MintAccessToken(cfg, time.Now(), 7)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token+"x")
	if err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "catalog",
		ExpirationMinutes: 15,
	}
	issued := time.Now().Add(-time.Hour)

	token, err := MintAccessToken(cfg, issued, 7)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "catalog",
		ExpirationMinutes: 15,
	}
	issued := time.Now().Add(-time.Hour)

	token, err := MintAccessToken(cfg, issued, 99)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("expected expired token to parse on refresh path: %v", err)
	}
	userID, err := claims.UserID()
	if err != nil || userID != 99 {
		t.Fatalf("expected user id 99, got %d (err %v)", userID, err)
	}

	// The signature still has to be valid.
	if _, err := ParseAccessTokenAllowExpired(cfg, token+"x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestMintAccessTokenInvalidUser(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "catalog",
		ExpirationMinutes: 5,
	}

	if _, err := MintAccessToken(cfg, time.Now(), 0); err == nil {
		t.Fatal("expected invalid user id error")
	}
}

func TestParseAccessTokenAllowExpiredRejectsForeignIssuer(t *testing.T) {
	mintCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "somewhere-else",
		ExpirationMinutes: 10,
	}
	token, err := MintAccessToken(mintCfg, time.Now().Add(-time.Hour), 7)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	parseCfg := mintCfg
	parseCfg.Issuer = "catalog"
	if _, err := ParseAccessTokenAllowExpired(parseCfg, token); err == nil {
		t.Fatal("expected foreign issuer to be rejected even with expiry skipped")
	}
}
