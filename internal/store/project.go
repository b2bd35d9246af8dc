package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type ProjectStore struct {
	pool *pgxpool.Pool
}

func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

// ProjectFilter narrows List. Zero values mean "no filter".
type ProjectFilter struct {
	Category model.ProjectCategory
	Featured bool
	Limit    int
}

const projectColumns = `id, title, description, image_url, category, tech_stack,
	project_link, github_link, featured, completion_date, client, status,
	created_at, updated_at`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Category,
		&p.TechStack, &p.ProjectLink, &p.GithubLink, &p.Featured,
		&p.CompletionDate, &p.Client, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (s *ProjectStore) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ($1 = '' OR category = $1)
		AND (NOT $2 OR featured) ORDER BY created_at DESC`
	args := []any{string(filter.Category), filter.Featured}
	if filter.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (s *ProjectStore) Get(ctx context.Context, id string) (*model.Project, error) {
	return scanProject(s.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (s *ProjectStore) Create(ctx context.Context, p *model.Project) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO projects (id, title, description, image_url, category, tech_stack,
			project_link, github_link, featured, completion_date, client, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.ImageURL, p.Category, p.TechStack,
		p.ProjectLink, p.GithubLink, p.Featured, p.CompletionDate, p.Client, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapErr(err)
}

func (s *ProjectStore) Update(ctx context.Context, p *model.Project) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE projects SET title = $2, description = $3, image_url = $4, category = $5,
			tech_stack = $6, project_link = $7, github_link = $8, featured = $9,
			completion_date = $10, client = $11, status = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.ImageURL, p.Category, p.TechStack,
		p.ProjectLink, p.GithubLink, p.Featured, p.CompletionDate, p.Client, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapErr(err)
}

func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
