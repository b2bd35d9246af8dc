package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsStore struct {
	pool *pgxpool.Pool
}

func NewAnalyticsStore(pool *pgxpool.Pool) *AnalyticsStore {
	return &AnalyticsStore{pool: pool}
}

// DashboardCounts aggregates record counts for the admin dashboard.
type DashboardCounts struct {
	Projects             int `json:"projects"`
	Blogs                int `json:"blogs"`
	PublishedBlogs       int `json:"publishedBlogs"`
	Services             int `json:"services"`
	Testimonials         int `json:"testimonials"`
	ApprovedTestimonials int `json:"approvedTestimonials"`
	Contacts             int `json:"contacts"`
	NewContacts          int `json:"newContacts"`
	Subscribers          int `json:"subscribers"`
	TotalBlogViews       int `json:"totalBlogViews"`
}

// ContactSummary is the trimmed contact row shown on the dashboard.
type ContactSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogSummary is the trimmed blog row shown on the dashboard.
type BlogSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *AnalyticsStore) Counts(ctx context.Context) (*DashboardCounts, error) {
	var c DashboardCounts
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM blogs),
			(SELECT COUNT(*) FROM blogs WHERE published),
			(SELECT COUNT(*) FROM services),
			(SELECT COUNT(*) FROM testimonials),
			(SELECT COUNT(*) FROM testimonials WHERE approved),
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM contacts WHERE status = 'New'),
			(SELECT COUNT(*) FROM subscribers WHERE subscribed),
			(SELECT COALESCE(SUM(views), 0) FROM blogs)`,
	).Scan(&c.Projects, &c.Blogs, &c.PublishedBlogs, &c.Services,
		&c.Testimonials, &c.ApprovedTestimonials, &c.Contacts,
		&c.NewContacts, &c.Subscribers, &c.TotalBlogViews)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *AnalyticsStore) RecentContacts(ctx context.Context, limit int) ([]ContactSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, subject, status, created_at
		FROM contacts ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []ContactSummary{}
	for rows.Next() {
		var c ContactSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *AnalyticsStore) PopularBlogs(ctx context.Context, limit int) ([]BlogSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, views, created_at
		FROM blogs WHERE published ORDER BY views DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []BlogSummary{}
	for rows.Next() {
		var b BlogSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Views, &b.CreatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}
