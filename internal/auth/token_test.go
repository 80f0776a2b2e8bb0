package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/auth"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := auth.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatal("Issue() returned empty token")
	}
	if token.TokenType != "bearer" {
		t.Errorf("TokenType = %q, want %q", token.TokenType, "bearer")
	}

	got, err := svc.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got != userID {
		t.Errorf("Verify() = %s, want %s", got, userID)
	}
}

func TestTokenService_VerifyRejections(t *testing.T) {
	svc := auth.NewTokenService("test-secret", time.Hour)

	expired := auth.NewTokenService("test-secret", -time.Hour)
	expiredToken, err := expired.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	other := auth.NewTokenService("other-secret", time.Hour)
	foreignToken, err := other.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"expired token", expiredToken.AccessToken},
		{"wrong secret", foreignToken.AccessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); err != auth.ErrInvalidToken {
				t.Errorf("Verify() error = %v, want %v", err, auth.ErrInvalidToken)
			}
		})
	}
}
