package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type fakeValidator struct {
	claims *auth.Claims
	err    error
}

func (f *fakeValidator) Validate(string) (*auth.Claims, error) {
	return f.claims, f.err
}

type fakeAdminStore struct {
	admin *model.Admin
	err   error
}

func (f *fakeAdminStore) GetByID(context.Context, string) (*model.Admin, error) {
	return f.admin, f.err
}

func activeAdmin(role model.Role) *model.Admin {
	return &model.Admin{
		ID:       "admin-1",
		Username: "alice",
		Email:    "alice@example.org",
		FullName: "Alice Example",
		Role:     role,
		Active:   true,
	}
}

func runAuthenticated(t *testing.T, tokens tokenValidator, admins adminByIDer, header string) (*httptest.ResponseRecorder, *model.Admin) {
	t.Helper()

	var seen *model.Admin
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	Authenticate(tokens, admins)(next).ServeHTTP(rr, req)
	return rr, seen
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rr.Body.String())
	}
	return body.Success, body.Message
}

func TestAuthenticateNoToken(t *testing.T) {
	for _, header := range []string{"", "Basic abc123", "Bearer"} {
		rr, seen := runAuthenticated(t, &fakeValidator{}, &fakeAdminStore{}, header)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: got status %d, want 401", header, rr.Code)
		}
		success, msg := decodeMessage(t, rr)
		if success || msg != "No authentication token, access denied" {
			t.Errorf("header %q: unexpected body %s", header, rr.Body.String())
		}
		if seen != nil {
			t.Errorf("header %q: handler ran despite missing token", header)
		}
	}
}

func TestAuthenticateTokenFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"malformed", auth.ErrTokenMalformed, "Invalid token"},
		{"expired", auth.ErrTokenExpired, "Token expired"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, seen := runAuthenticated(t, &fakeValidator{err: tc.err}, &fakeAdminStore{}, "Bearer tok")
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("got status %d, want 401", rr.Code)
			}
			if _, msg := decodeMessage(t, rr); msg != tc.wantMsg {
				t.Errorf("got message %q, want %q", msg, tc.wantMsg)
			}
			if seen != nil {
				t.Error("handler ran despite invalid token")
			}
		})
	}
}

func TestAuthenticateAdminGone(t *testing.T) {
	tokens := &fakeValidator{claims: &auth.Claims{AdminID: "admin-1", Role: model.RoleAdmin}}
	rr, seen := runAuthenticated(t, tokens, &fakeAdminStore{err: store.ErrNotFound}, "Bearer tok")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rr.Code)
	}
	if _, msg := decodeMessage(t, rr); msg != "Admin not found" {
		t.Errorf("got message %q", msg)
	}
	if seen != nil {
		t.Error("handler ran for deleted admin")
	}
}

func TestAuthenticateStoreFailureIs500(t *testing.T) {
	// A store outage is an internal error, never an authentication verdict.
	tokens := &fakeValidator{claims: &auth.Claims{AdminID: "admin-1", Role: model.RoleAdmin}}
	rr, seen := runAuthenticated(t, tokens, &fakeAdminStore{err: errors.New("connection refused")}, "Bearer tok")

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", rr.Code)
	}
	if _, msg := decodeMessage(t, rr); msg != "Authentication error" {
		t.Errorf("got message %q", msg)
	}
	if seen != nil {
		t.Error("handler ran despite store failure")
	}
}

func TestAuthenticateDeactivated(t *testing.T) {
	inactive := activeAdmin(model.RoleAdmin)
	inactive.Active = false
	tokens := &fakeValidator{claims: &auth.Claims{AdminID: "admin-1", Role: model.RoleAdmin}}

	rr, seen := runAuthenticated(t, tokens, &fakeAdminStore{admin: inactive}, "Bearer tok")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rr.Code)
	}
	if _, msg := decodeMessage(t, rr); msg != "Account is deactivated" {
		t.Errorf("got message %q", msg)
	}
	if seen != nil {
		t.Error("handler ran for deactivated admin")
	}
}

func TestAuthenticateSuccessAttachesAdmin(t *testing.T) {
	admin := activeAdmin(model.RoleEditor)
	tokens := &fakeValidator{claims: &auth.Claims{AdminID: admin.ID, Role: admin.Role}}

	rr, seen := runAuthenticated(t, tokens, &fakeAdminStore{admin: admin}, "Bearer tok")
	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	if seen == nil {
		t.Fatal("no admin attached to context")
	}
	if seen.Username != "alice" || seen.Role != model.RoleEditor {
		t.Errorf("unexpected admin in context: %+v", seen)
	}
}

func TestDeactivationTakesEffectOnNextRequest(t *testing.T) {
	// Same token both times; only the stored active flag changes.
	admin := activeAdmin(model.RoleAdmin)
	tokens := &fakeValidator{claims: &auth.Claims{AdminID: admin.ID, Role: admin.Role}}
	admins := &fakeAdminStore{admin: admin}

	rr, _ := runAuthenticated(t, tokens, admins, "Bearer tok")
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: got status %d, want 200", rr.Code)
	}

	admin.Active = false
	rr, _ = runAuthenticated(t, tokens, admins, "Bearer tok")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("after deactivation: got status %d, want 401", rr.Code)
	}
	if _, msg := decodeMessage(t, rr); msg != "Account is deactivated" {
		t.Errorf("got message %q", msg)
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		admin    *model.Admin
		wantCode int
	}{
		{"super-admin allowed", activeAdmin(model.RoleSuperAdmin), http.StatusOK},
		{"admin forbidden", activeAdmin(model.RoleAdmin), http.StatusForbidden},
		{"editor forbidden", activeAdmin(model.RoleEditor), http.StatusForbidden},
		{"no identity forbidden", nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/register", nil)
			if tc.admin != nil {
				ctx := context.WithValue(req.Context(), contextKeyAdmin, tc.admin)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			RequireSuperAdmin()(next).ServeHTTP(rr, req)

			if rr.Code != tc.wantCode {
				t.Errorf("got status %d, want %d", rr.Code, tc.wantCode)
			}
			if tc.wantCode == http.StatusForbidden {
				if _, msg := decodeMessage(t, rr); msg != "Access denied. Super admin only." {
					t.Errorf("got message %q", msg)
				}
			}
		})
	}
}
