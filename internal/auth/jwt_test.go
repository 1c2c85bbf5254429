package auth

import (
	"testing"
	"time"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", "finance-api", 15*time.Minute, 24*time.Hour)
}

func TestGeneratePairRoundTrip(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.GeneratePair("user-1", "ada@example.com")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := tm.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	ref, err := tm.ParseRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}
	if ref.UserID != "user-1" {
		t.Fatalf("unexpected refresh claims: %+v", ref)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.GeneratePair("user-1", "ada@example.com")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if _, err := tm.ParseAccess(pair.RefreshToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
	if _, err := tm.ParseRefresh(pair.AccessToken); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestParseRejectsForgedToken(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("wrong", "wrong", "finance-api", time.Minute, time.Minute)

	pair, err := other.GeneratePair("user-1", "ada@example.com")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if _, err := tm.ParseAccess(pair.AccessToken); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", "finance-api", -time.Minute, -time.Minute)

	pair, err := tm.GeneratePair("user-1", "ada@example.com")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if _, err := tm.ParseAccess(pair.AccessToken); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := VerifyPassword("s3cret-pass", hash); err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if err := VerifyPassword("wrong", hash); err == nil {
		t.Fatal("wrong password accepted")
	}
}
