package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hlstech/website/internal/model"
)

const testSecret = "test-secret-key-for-jwt-0123456789ab"

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	token, err := issuer.Issue("admin-42", model.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.AdminID != "admin-42" {
		t.Errorf("AdminID: got %q, want %q", claims.AdminID, "admin-42")
	}
	if claims.Role != model.RoleSuperAdmin {
		t.Errorf("Role: got %q, want %q", claims.Role, model.RoleSuperAdmin)
	}
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"immediately", issued, nil},
		{"six days later", issued.Add(6 * 24 * time.Hour), nil},
		{"just before expiry", issued.Add(TokenTTL - time.Minute), nil},
		{"just after expiry", issued.Add(TokenTTL + time.Minute), ErrTokenExpired},
		{"a month later", issued.Add(30 * 24 * time.Hour), ErrTokenExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issuer.now = func() time.Time { return tc.at }
			_, err := issuer.Validate(token)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate at %v: got %v, want %v", tc.at, err, tc.wantErr)
			}
		})
	}
}

func TestTokenMalformed(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)

	good, err := issuer.Issue("admin-1", model.RoleEditor)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "garbage.token.here"},
		{"empty", ""},
		{"truncated", good[:len(good)-10]},
		{"tampered signature", good[:len(good)-4] + "AAAA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.Validate(tc.token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("got %v, want ErrTokenMalformed", err)
			}
		})
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	other := NewTokenIssuer("another-secret-entirely-0123456789ab")

	token, err := issuer.Issue("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("token signed with a different secret validated: %v", err)
	}
}

func TestTokenIsThreePartJWT(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	token, err := issuer.Issue("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("expected header.payload.signature, got %d parts", len(parts))
	}
	// The signing secret must never appear in the token itself.
	if strings.Contains(token, testSecret) {
		t.Error("token embeds the signing secret")
	}
}
