package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", 42, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if d := time.Until(tok.Exp); d < 23*time.Hour || d > 25*time.Hour {
		t.Fatalf("unexpected expiry in %s", d)
	}
	id, err := ParseSessionToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestParseSessionTokenRejects(t *testing.T) {
	valid, err := NewSessionToken("secret", 7, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := NewSessionToken("secret", 7, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "7"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]struct {
		secret string
		raw    string
	}{
		"empty":         {"secret", ""},
		"garbage":       {"secret", "not.a.jwt"},
		"wrong secret":  {"other", valid.Token},
		"expired":       {"secret", expired.Token},
		"none alg":      {"secret", noneAlg},
		"bad subject":   {"secret", badSubject},
		"missing exp":   {"secret", noExpiry},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseSessionToken(tc.secret, tc.raw); err != ErrInvalidToken {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	p := NewPasswords(10)
	hash, err := p.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !p.Matches(hash, "password123") {
		t.Fatal("expected password to verify")
	}
	if p.Matches(hash, "password124") {
		t.Fatal("expected wrong password to fail")
	}
	if p.Matches("not-a-hash", "password123") {
		t.Fatal("malformed hash must not match")
	}
	if _, err := p.Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("long password err = %v, want ErrPasswordTooLong", err)
	}
}

func TestPasswordCostClamped(t *testing.T) {
	cases := []struct{ in, want int }{{0, 4}, {4, 4}, {12, 12}, {40, 31}}
	for _, tc := range cases {
		if got := NewPasswords(tc.in).Cost(); got != tc.want {
			t.Fatalf("NewPasswords(%d).Cost() = %d, want %d", tc.in, got, tc.want)
		}
	}
}
