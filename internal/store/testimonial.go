package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type TestimonialStore struct {
	pool *pgxpool.Pool
}

func NewTestimonialStore(pool *pgxpool.Pool) *TestimonialStore {
	return &TestimonialStore{pool: pool}
}

// TestimonialFilter narrows List.
type TestimonialFilter struct {
	ApprovedOnly bool
	Featured     bool
}

const testimonialColumns = `id, name, position, company, review, rating, avatar,
	service_used, approved, featured, created_at, updated_at`

func scanTestimonial(row pgx.Row) (*model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Position, &t.Company, &t.Review, &t.Rating,
		&t.Avatar, &t.ServiceUsed, &t.Approved, &t.Featured, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (s *TestimonialStore) List(ctx context.Context, filter TestimonialFilter) ([]model.Testimonial, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials
		WHERE (NOT $1 OR approved) AND (NOT $2 OR featured)
		ORDER BY featured DESC, created_at DESC`,
		filter.ApprovedOnly, filter.Featured)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, *t)
	}
	return testimonials, rows.Err()
}

func (s *TestimonialStore) Get(ctx context.Context, id string) (*model.Testimonial, error) {
	return scanTestimonial(s.pool.QueryRow(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
}

func (s *TestimonialStore) Create(ctx context.Context, t *model.Testimonial) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO testimonials (id, name, position, company, review, rating,
			avatar, service_used, approved, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Position, t.Company, t.Review, t.Rating,
		t.Avatar, t.ServiceUsed, t.Approved, t.Featured,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	return mapErr(err)
}

func (s *TestimonialStore) Update(ctx context.Context, t *model.Testimonial) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE testimonials SET name = $2, position = $3, company = $4, review = $5,
			rating = $6, avatar = $7, service_used = $8, approved = $9, featured = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Position, t.Company, t.Review, t.Rating,
		t.Avatar, t.ServiceUsed, t.Approved, t.Featured,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	return mapErr(err)
}

// Approve marks a testimonial as approved for public display.
func (s *TestimonialStore) Approve(ctx context.Context, id string) (*model.Testimonial, error) {
	return scanTestimonial(s.pool.QueryRow(ctx, `
		UPDATE testimonials SET approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+testimonialColumns, id))
}

func (s *TestimonialStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
