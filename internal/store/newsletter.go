package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hlstech/website/internal/model"
)

type NewsletterStore struct {
	pool *pgxpool.Pool
}

func NewNewsletterStore(pool *pgxpool.Pool) *NewsletterStore {
	return &NewsletterStore{pool: pool}
}

const subscriberColumns = `id, email, name, subscribed, subscribed_at, unsubscribed_at`

func (s *NewsletterStore) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	var sub model.Subscriber
	err := s.pool.QueryRow(ctx, `
		SELECT `+subscriberColumns+` FROM subscribers WHERE email = $1`, email,
	).Scan(&sub.ID, &sub.Email, &sub.Name, &sub.Subscribed,
		&sub.SubscribedAt, &sub.UnsubscribedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sub, nil
}

func (s *NewsletterStore) Create(ctx context.Context, sub *model.Subscriber) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO subscribers (id, email, name, subscribed)
		VALUES ($1, $2, $3, TRUE)
		RETURNING subscribed_at`,
		sub.ID, sub.Email, sub.Name,
	).Scan(&sub.SubscribedAt)
	if err != nil {
		return mapErr(err)
	}
	sub.Subscribed = true
	return nil
}

// Resubscribe reactivates a previously unsubscribed address.
func (s *NewsletterStore) Resubscribe(ctx context.Context, id string) (*model.Subscriber, error) {
	var sub model.Subscriber
	err := s.pool.QueryRow(ctx, `
		UPDATE subscribers
		SET subscribed = TRUE, subscribed_at = NOW(), unsubscribed_at = NULL
		WHERE id = $1
		RETURNING `+subscriberColumns, id,
	).Scan(&sub.ID, &sub.Email, &sub.Name, &sub.Subscribed,
		&sub.SubscribedAt, &sub.UnsubscribedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sub, nil
}

func (s *NewsletterStore) ListSubscribed(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+subscriberColumns+` FROM subscribers
		WHERE subscribed ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []model.Subscriber{}
	for rows.Next() {
		var sub model.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Name, &sub.Subscribed,
			&sub.SubscribedAt, &sub.UnsubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
