package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hlstech/website/internal/auth"
	appmw "github.com/hlstech/website/internal/middleware"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type adminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, string, error)
	Create(ctx context.Context, admin *model.Admin, passwordHash string) error
	ListAll(ctx context.Context) ([]model.Admin, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

type tokenIssuer interface {
	Issue(adminID string, role model.Role) (string, error)
}

// AdminHandler handles admin authentication and account management.
type AdminHandler struct {
	BaseHandler
	admins adminStore
	tokens tokenIssuer
}

func NewAdminHandler(logger *slog.Logger, admins adminStore, tokens tokenIssuer) *AdminHandler {
	return &AdminHandler{BaseHandler: BaseHandler{Logger: logger}, admins: admins, tokens: tokens}
}

// adminProfile is the public view of an administrator returned by the auth
// endpoints. The password hash never leaves the store's login path.
func adminProfile(a *model.Admin) envelope {
	return envelope{
		"id":       a.ID,
		"username": a.Username,
		"email":    a.Email,
		"fullName": a.FullName,
		"role":     a.Role,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a bearer token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	var fieldErrors []FieldError
	if req.Username == "" {
		fieldErrors = append(fieldErrors, FieldError{"username", "Username is required"})
	}
	if req.Password == "" {
		fieldErrors = append(fieldErrors, FieldError{"password", "Password is required"})
	}
	if len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	admin, hash, err := h.admins.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison so this path costs the same as a
			// wrong password for an existing account.
			auth.VerifyDummy(req.Password)
			h.errorResponse(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	if !auth.Verify(hash, req.Password) {
		h.errorResponse(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !admin.Active {
		h.errorResponse(w, r, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	if err := h.admins.UpdateLastLogin(r.Context(), admin.ID); err != nil {
		h.Logger.Error("login: failed to update last login", "err", err, "admin_id", admin.ID)
	}

	token, err := h.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"admin":   adminProfile(admin),
	}, nil)
}

type registerRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	FullName string     `json:"fullName"`
	Role     model.Role `json:"role"`
}

// Register creates a new administrator. Routed behind the super-admin gate.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Role == "" {
		req.Role = model.RoleAdmin
	}

	var fieldErrors []FieldError
	if req.Username == "" {
		fieldErrors = append(fieldErrors, FieldError{"username", "Username is required"})
	}
	if !model.ValidEmail(req.Email) {
		fieldErrors = append(fieldErrors, FieldError{"email", "Valid email is required"})
	}
	if len(req.Password) < 8 {
		fieldErrors = append(fieldErrors, FieldError{"password", "Password must be at least 8 characters"})
	}
	if req.FullName == "" {
		fieldErrors = append(fieldErrors, FieldError{"fullName", "Full name is required"})
	}
	if !model.ValidRole(req.Role) {
		fieldErrors = append(fieldErrors, FieldError{"role", "Invalid role"})
	}
	if len(fieldErrors) > 0 {
		h.validationResponse(w, r, fieldErrors)
		return
	}

	hash, err := auth.Hash(req.Password)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	admin := &model.Admin{
		ID:       auth.NewID(),
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		Active:   true,
	}

	if err := h.admins.Create(r.Context(), admin, hash); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			h.errorResponse(w, r, http.StatusBadRequest, "Username or email already exists")
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Admin created successfully",
		"admin":   adminProfile(admin),
	}, nil)
}

// Me returns the authenticated administrator's own record.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin := appmw.AdminFromContext(r.Context())
	if admin == nil {
		h.errorResponse(w, r, http.StatusUnauthorized, "No authentication token, access denied")
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{"success": true, "data": admin}, nil)
}

// List returns all administrators. Routed behind the super-admin gate.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.ListAll(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(admins),
		"data":    admins,
	}, nil)
}
