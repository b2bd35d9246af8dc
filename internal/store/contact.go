package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type ContactStore struct {
	pool *pgxpool.Pool
}

func NewContactStore(pool *pgxpool.Pool) *ContactStore {
	return &ContactStore{pool: pool}
}

// ContactFilter narrows List.
type ContactFilter struct {
	Status model.ContactStatus
	Limit  int
}

const contactColumns = `id, name, email, phone, subject, message, service_interest,
	status, ip_address, user_agent, created_at, updated_at`

func scanContact(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.ServiceInterest, &c.Status, &c.IPAddress, &c.UserAgent,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (s *ContactStore) List(ctx context.Context, filter ContactFilter) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`
	args := []any{string(filter.Status)}
	if filter.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (s *ContactStore) Get(ctx context.Context, id string) (*model.Contact, error) {
	return scanContact(s.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
}

func (s *ContactStore) Create(ctx context.Context, c *model.Contact) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO contacts (id, name, email, phone, subject, message,
			service_interest, status, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message,
		c.ServiceInterest, c.Status, c.IPAddress, c.UserAgent,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapErr(err)
}

func (s *ContactStore) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.Contact, error) {
	return scanContact(s.pool.QueryRow(ctx, `
		UPDATE contacts SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+contactColumns, id, status))
}

func (s *ContactStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
