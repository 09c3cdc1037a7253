package utils

import (
	"testing"
	"time"

	"github.com/bricker/vivial-sub000/config"
)

const tokenTestDuration = time.Hour

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse 1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse 1" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "correct horse 1") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong horse 1") {
		t.Error("wrong password accepted")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"longenough1", false},
		{"short1", true},
		{"lettersonly", true},
		{"12345678", true},
		{"", true},
	}
	for _, tc := range cases {
		err := ValidatePasswordStrength(tc.password)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidatePasswordStrength(%q) = %v, wantErr %v", tc.password, err, tc.wantErr)
		}
	}
}

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("acct-1", "test@example.com", "dev-1", tokenTestDuration)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	auth, err := ExtractAuthFromToken(token)
	if err != nil {
		t.Fatalf("ExtractAuthFromToken: %v", err)
	}
	if auth.AccountID != "acct-1" || auth.DeviceID != "dev-1" {
		t.Errorf("extracted %q/%q", auth.AccountID, auth.DeviceID)
	}
	if auth.Email != "test@example.com" {
		t.Errorf("email = %q", auth.Email)
	}

	if _, err := ExtractAuthFromToken(token + "tampered"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestTokenSecretFollowsConfig(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	defer func() { config.AppConfig.JWTSecret = prev }()

	config.AppConfig.JWTSecret = "secret-one"
	token, err := GenerateToken("acct-1", "test@example.com", "dev-1", tokenTestDuration)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ExtractAuthFromToken(token); err != nil {
		t.Fatalf("ExtractAuthFromToken with matching secret: %v", err)
	}

	config.AppConfig.JWTSecret = "secret-two"
	if _, err := ExtractAuthFromToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("token-a")
	if a != HashToken("token-a") {
		t.Error("hash not deterministic")
	}
	if a == HashToken("token-b") {
		t.Error("distinct tokens collide")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
