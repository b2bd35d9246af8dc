package auth

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hlstech/website/internal/model"
)

const bcryptCost = 12

// Hash returns a bcrypt hash of the password.
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

// Verify reports whether password matches the stored bcrypt hash.
func Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var dummyHash = sync.OnceValue(func() string {
	h, _ := Hash(uuid.NewString())
	return h
})

// VerifyDummy burns a full bcrypt comparison against a throwaway hash and
// always returns false. The login path calls it when the username does not
// exist, so unknown-username and wrong-password attempts cost the same.
func VerifyDummy(password string) bool {
	Verify(dummyHash(), password)
	return false
}

// NewID generates a random record ID.
func NewID() string {
	return uuid.NewString()
}

// AdminCreator is the minimal interface needed for seeding the first admin.
type AdminCreator interface {
	CountAll(ctx context.Context) (int, error)
	Create(ctx context.Context, admin *model.Admin, passwordHash string) error
}

// SeedFirstAdmin creates the initial super-admin account from env vars if no
// administrator records exist yet.
func SeedFirstAdmin(ctx context.Context, admins AdminCreator) {
	username := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_USERNAME")))
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	fullName := strings.TrimSpace(os.Getenv("SEED_ADMIN_NAME"))
	if username == "" || email == "" || password == "" {
		return
	}
	if fullName == "" {
		fullName = username
	}

	count, err := admins.CountAll(ctx)
	if err != nil {
		slog.Error("seed: failed to count admins", "err", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := Hash(password)
	if err != nil {
		slog.Error("seed: failed to hash password", "err", err)
		return
	}

	admin := &model.Admin{
		ID:       NewID(),
		Username: username,
		Email:    email,
		FullName: fullName,
		Role:     model.RoleSuperAdmin,
		Active:   true,
	}
	if err := admins.Create(ctx, admin, hash); err != nil {
		slog.Error("seed: failed to create admin", "err", err)
		return
	}
	slog.Info("seed: created first super-admin", "username", username)
}
