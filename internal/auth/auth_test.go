package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"finly/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, "finly")
	token, exp, err := ts.GenerateToken(domain.Identity{ID: "u1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry %v is not in the future", exp)
	}

	id, err := ts.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id.ID != "u1" || id.Email != "a@x.com" {
		t.Errorf("identity = %+v", id)
	}
}

func TestParseTokenRejects(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, "finly")
	good, _, _ := ts.GenerateToken(domain.Identity{ID: "u1", Email: "a@x.com"})

	expired := NewTokenService("secret", time.Hour, "finly")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.GenerateToken(domain.Identity{ID: "u1"})

	otherIssuer := NewTokenService("secret", time.Hour, "someone-else")
	foreign, _, _ := otherIssuer.GenerateToken(domain.Identity{ID: "u1"})

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"tampered":       good + "x",
		"wrong secret":   mustSign(t, NewTokenService("other", time.Hour, "finly")),
		"expired":        old,
		"wrong issuer":   foreign,
		"alg none":       noneToken,
		"missing userid": mustSign(t, ts, domain.Identity{}),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ts.ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ParseToken error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func mustSign(t *testing.T, ts *TokenService, ids ...domain.Identity) string {
	t.Helper()
	id := domain.Identity{ID: "u1"}
	if len(ids) > 0 {
		id = ids[0]
	}
	tok, _, err := ts.GenerateToken(id)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in clear text")
	}
	if err := CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := CheckPassword(hash, "hunter23"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CheckPassword(wrong) = %v", err)
	}
	if err := CheckPassword("", "anything"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CheckPassword(empty hash) = %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := map[string]bool{
		"hunter":                true,
		"12345":                 false,
		"ключик":                true,
		strings.Repeat("a", 72): true,
		strings.Repeat("a", 73): false,
		strings.Repeat("é", 36): true,
		strings.Repeat("é", 37): false,
	}
	for pw, ok := range tests {
		err := ValidatePassword(pw)
		if ok {
			if err != nil {
				t.Errorf("ValidatePassword(%d bytes) = %v", len(pw), err)
			}
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Field != "password" {
			t.Errorf("ValidatePassword(%d bytes) = %v, want password error", len(pw), err)
		}
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 80))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("HashPassword(80 bytes) = %v, want password validation error", err)
	}
}
