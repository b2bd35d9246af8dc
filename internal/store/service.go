package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type ServiceStore struct {
	pool *pgxpool.Pool
}

func NewServiceStore(pool *pgxpool.Pool) *ServiceStore {
	return &ServiceStore{pool: pool}
}

const serviceColumns = `id, title, description, icon, image, features,
	starting_price, currency, pricing_model, booking_available, popular,
	sort_order, created_at, updated_at`

func scanService(row pgx.Row) (*model.Service, error) {
	var sv model.Service
	err := row.Scan(&sv.ID, &sv.Title, &sv.Description, &sv.Icon, &sv.Image,
		&sv.Features, &sv.Pricing.StartingPrice, &sv.Pricing.Currency,
		&sv.Pricing.PricingModel, &sv.BookingAvailable, &sv.Popular,
		&sv.Order, &sv.CreatedAt, &sv.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sv, nil
}

func (s *ServiceStore) List(ctx context.Context) ([]model.Service, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+serviceColumns+` FROM services
		ORDER BY sort_order, popular DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *sv)
	}
	return services, rows.Err()
}

func (s *ServiceStore) Get(ctx context.Context, id string) (*model.Service, error) {
	return scanService(s.pool.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
}

func (s *ServiceStore) Create(ctx context.Context, sv *model.Service) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO services (id, title, description, icon, image, features,
			starting_price, currency, pricing_model, booking_available, popular, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		sv.ID, sv.Title, sv.Description, sv.Icon, sv.Image, sv.Features,
		sv.Pricing.StartingPrice, sv.Pricing.Currency, sv.Pricing.PricingModel,
		sv.BookingAvailable, sv.Popular, sv.Order,
	).Scan(&sv.CreatedAt, &sv.UpdatedAt)
	return mapErr(err)
}

func (s *ServiceStore) Update(ctx context.Context, sv *model.Service) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE services SET title = $2, description = $3, icon = $4, image = $5,
			features = $6, starting_price = $7, currency = $8, pricing_model = $9,
			booking_available = $10, popular = $11, sort_order = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		sv.ID, sv.Title, sv.Description, sv.Icon, sv.Image, sv.Features,
		sv.Pricing.StartingPrice, sv.Pricing.Currency, sv.Pricing.PricingModel,
		sv.BookingAvailable, sv.Popular, sv.Order,
	).Scan(&sv.CreatedAt, &sv.UpdatedAt)
	return mapErr(err)
}

func (s *ServiceStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
