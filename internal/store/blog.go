package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type BlogStore struct {
	pool *pgxpool.Pool
}

func NewBlogStore(pool *pgxpool.Pool) *BlogStore {
	return &BlogStore{pool: pool}
}

// BlogFilter narrows List. Zero values mean "no filter".
type BlogFilter struct {
	Category      model.BlogCategory
	Tag           string
	PublishedOnly bool
	Limit         int
}

const blogColumns = `id, title, slug, author, content, excerpt, featured_image,
	tags, category, published, views, read_time, seo_meta_title,
	seo_meta_description, seo_keywords, created_at, updated_at`

func scanBlog(row pgx.Row) (*model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Author, &b.Content, &b.Excerpt,
		&b.FeaturedImage, &b.Tags, &b.Category, &b.Published, &b.Views, &b.ReadTime,
		&b.SEO.MetaTitle, &b.SEO.MetaDescription, &b.SEO.Keywords,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *BlogStore) List(ctx context.Context, filter BlogFilter) ([]model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs
		WHERE ($1 = '' OR category = $1)
		AND ($2 = '' OR $2 = ANY(tags))
		AND (NOT $3 OR published)
		ORDER BY created_at DESC`
	args := []any{string(filter.Category), filter.Tag, filter.PublishedOnly}
	if filter.Limit > 0 {
		query += ` LIMIT $4`
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}

func (s *BlogStore) Get(ctx context.Context, id string) (*model.Blog, error) {
	return scanBlog(s.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
}

// GetPublishedBySlug returns a published post and increments its view counter
// in the same statement.
func (s *BlogStore) GetPublishedBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return scanBlog(s.pool.QueryRow(ctx, `
		UPDATE blogs SET views = views + 1
		WHERE slug = $1 AND published
		RETURNING `+blogColumns, slug))
}

func (s *BlogStore) Create(ctx context.Context, b *model.Blog) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO blogs (id, title, slug, author, content, excerpt, featured_image,
			tags, category, published, views, read_time, seo_meta_title,
			seo_meta_description, seo_keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`,
		b.ID, b.Title, b.Slug, b.Author, b.Content, b.Excerpt, b.FeaturedImage,
		b.Tags, b.Category, b.Published, b.Views, b.ReadTime, b.SEO.MetaTitle,
		b.SEO.MetaDescription, b.SEO.Keywords,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	return mapErr(err)
}

func (s *BlogStore) Update(ctx context.Context, b *model.Blog) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE blogs SET title = $2, slug = $3, author = $4, content = $5,
			excerpt = $6, featured_image = $7, tags = $8, category = $9,
			published = $10, read_time = $11, seo_meta_title = $12,
			seo_meta_description = $13, seo_keywords = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING views, created_at, updated_at`,
		b.ID, b.Title, b.Slug, b.Author, b.Content, b.Excerpt, b.FeaturedImage,
		b.Tags, b.Category, b.Published, b.ReadTime, b.SEO.MetaTitle,
		b.SEO.MetaDescription, b.SEO.Keywords,
	).Scan(&b.Views, &b.CreatedAt, &b.UpdatedAt)
	return mapErr(err)
}

func (s *BlogStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
