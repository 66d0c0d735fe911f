package util

import (
	"testing"
	"time"

	"paisa-server/src/models"
)

func setTestSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setTestSecrets(t)
	user := &models.User{ID: "user-1", Email: "user@example.com"}

	token, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "user@example.com" {
		t.Fatalf("wrong claims: %+v", claims)
	}
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	setTestSecrets(t)
	user := &models.User{ID: "user-1", Email: "user@example.com"}

	refresh, err := GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Separate secrets: a refresh token must never authenticate a request.
	if _, err := VerifyAccessToken(refresh); err == nil {
		t.Fatal("refresh token verified with access secret")
	}
	if _, err := VerifyRefreshToken(refresh); err != nil {
		t.Fatalf("refresh token should verify with refresh secret: %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	setTestSecrets(t)
	for _, bad := range []string{"", "not.a.jwt", "aaa.bbb.ccc"} {
		if _, err := VerifyAccessToken(bad); err == nil {
			t.Fatalf("%q should not verify", bad)
		}
	}
}

func TestRefreshTokenExpiryInFuture(t *testing.T) {
	setTestSecrets(t)
	expiry := RefreshTokenExpiry()
	if !expiry.After(time.Now()) {
		t.Fatal("refresh expiry must be in the future")
	}
}
