package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type AdminStore struct {
	pool *pgxpool.Pool
}

func NewAdminStore(pool *pgxpool.Pool) *AdminStore {
	return &AdminStore{pool: pool}
}

const adminColumns = `id, username, email, full_name, role, active, last_login, created_at, updated_at`

func (s *AdminStore) CountAll(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

// Create inserts a new administrator. Returns ErrDuplicate if the username or
// email is already taken.
func (s *AdminStore) Create(ctx context.Context, admin *model.Admin, passwordHash string) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO admins (id, username, email, password_hash, full_name, role, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		admin.ID, admin.Username, admin.Email, passwordHash, admin.FullName, admin.Role, admin.Active,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	return mapErr(err)
}

// GetByUsername returns the admin and their password hash. Login is the only
// caller; every other read path excludes the hash.
func (s *AdminStore) GetByUsername(ctx context.Context, username string) (*model.Admin, string, error) {
	var (
		a    model.Admin
		hash string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT `+adminColumns+`, password_hash FROM admins WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.Role, &a.Active,
		&a.LastLogin, &a.CreatedAt, &a.UpdatedAt, &hash)
	if err != nil {
		return nil, "", mapErr(err)
	}
	return &a, hash, nil
}

func (s *AdminStore) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var a model.Admin
	err := s.pool.QueryRow(ctx, `
		SELECT `+adminColumns+` FROM admins WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.Role, &a.Active,
		&a.LastLogin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (s *AdminStore) ListAll(ctx context.Context) ([]model.Admin, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.Role,
			&a.Active, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (s *AdminStore) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE admins SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id)
	return err
}
