package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "catalog-api", TTL: time.Hour}
}

func TestIssueParseRoundtrip(t *testing.T) {
	j := newTestJWTer()

	tok, err := j.Issue("u1", "alice@example.com", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u1" {
		t.Errorf("expected uid 'u1', got %q", c.UID)
	}
	if c.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", c.Email)
	}
	if c.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", c.Role)
	}
}

func TestParseWrongSecret(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("u1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "catalog-api", TTL: time.Hour}
	if _, err := other.Parse(tok); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

// 签名合法但缺身份声明的 token 必须被拒
func TestParseRejectsMissingClaims(t *testing.T) {
	j := newTestJWTer()
	now := time.Now()

	tests := []struct {
		name   string
		claims Claims
	}{
		{"missing uid", Claims{Email: "a@b.c", Role: "user"}},
		{"missing email", Claims{UID: "u1", Role: "user"}},
		{"missing role", Claims{UID: "u1", Email: "a@b.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.claims.RegisteredClaims = jwt.RegisteredClaims{
				Issuer:    j.Issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString(j.Secret)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			if _, err := j.Parse(tok); err == nil {
				t.Error("expected rejection of token with missing identity claims")
			}
		})
	}
}

func TestParseExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "catalog-api", TTL: -2 * time.Hour}
	tok, err := j.Issue("u1", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := j.Parse(tok); err == nil {
		t.Error("expected error for expired token")
	}
}
