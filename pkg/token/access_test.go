package token

import (
	"testing"
	"time"

	"arcade_backend/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	key := []byte("test-secret")
	user := &model.User{ID: 42}

	tok, err := GenerateAccessToken(user, key, time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := VerifyToken(tok, key)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	id, err := UserIDFromClaims(claims)
	if err != nil {
		t.Fatalf("UserIDFromClaims: %v", err)
	}
	if id != 42 {
		t.Errorf("user id = %d, want 42", id)
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	tok, err := GenerateAccessToken(&model.User{ID: 1}, []byte("key-a"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := VerifyToken(tok, []byte("key-b")); err == nil {
		t.Error("VerifyToken with wrong key: err = nil, want error")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	key := []byte("test-secret")
	tok, err := GenerateAccessToken(&model.User{ID: 1}, key, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := VerifyToken(tok, key); err == nil {
		t.Error("VerifyToken with expired token: err = nil, want error")
	}
}

func TestRefreshTokenVerification(t *testing.T) {
	tok, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	hash := HashRefreshToken(tok)
	if !VerifyRefreshToken(tok, hash) {
		t.Error("VerifyRefreshToken rejected its own token")
	}
	if VerifyRefreshToken("not-the-token", hash) {
		t.Error("VerifyRefreshToken accepted a wrong token")
	}
}
