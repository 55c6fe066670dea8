package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("user-1", "PRACTITIONER", "test-secret")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	c, err := ParseToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != "user-1" {
		t.Errorf("uid: got %s", c.UserID)
	}
	if c.Role != "PRACTITIONER" {
		t.Errorf("role: got %s", c.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, _ := MakeToken("user-1", "CLIENT", "secret-a")
	if _, err := ParseToken(tok, "secret-b"); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.jwt", "test-secret"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestParseTokenTampered(t *testing.T) {
	tok, _ := MakeToken("user-1", "CLIENT", "test-secret")
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", tok)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := ParseToken(tampered, "test-secret"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("empty token or hash")
	}
	if raw == hash {
		t.Error("raw token stored verbatim")
	}
	if HashRefreshToken(raw) != hash {
		t.Error("hash is not reproducible from the raw token")
	}

	raw2, _, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw2 == raw {
		t.Error("two generated tokens collided")
	}
}
