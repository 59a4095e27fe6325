package auth

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)

	token, err := issuer.IssueAccessToken(42)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}

	claims, err := issuer.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("token type = %s, want %s", claims.TokenType, TokenTypeAccess)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute, -time.Minute)

	token, err := issuer.IssueAccessToken(1)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	_, err = issuer.ParseAccess(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)
	other := NewIssuer("other-secret", time.Hour, 24*time.Hour)

	token, err := issuer.IssueAccessToken(1)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	_, err = other.ParseAccess(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

// A refresh token must never pass as an access token, and vice versa.
func TestTokenTypeEnforced(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)

	refresh, err := issuer.IssueRefreshToken(7)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	if _, err := issuer.ParseAccess(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseAccess(refresh) err = %v, want ErrTokenInvalid", err)
	}

	access, err := issuer.IssueAccessToken(7)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := issuer.ParseRefresh(access); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseRefresh(access) err = %v, want ErrTokenInvalid", err)
	}

	claims, err := issuer.ParseRefresh(refresh)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("user id = %d, want 7", claims.UserID)
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour, 24*time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.ParseAccess(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseAccess(%q) err = %v, want ErrTokenInvalid", token, err)
		}
	}
}
