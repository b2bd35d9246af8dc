package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hlstech/website/internal/store"

	"golang.org/x/sync/errgroup"
)

type analyticsStore interface {
	Counts(ctx context.Context) (*store.DashboardCounts, error)
	RecentContacts(ctx context.Context, limit int) ([]store.ContactSummary, error)
	PopularBlogs(ctx context.Context, limit int) ([]store.BlogSummary, error)
}

// AnalyticsHandler serves the admin dashboard aggregates.
type AnalyticsHandler struct {
	BaseHandler
	analytics analyticsStore
}

func NewAnalyticsHandler(logger *slog.Logger, analytics analyticsStore) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: BaseHandler{Logger: logger}, analytics: analytics}
}

// Dashboard returns record counts, the five most recent contact messages and
// the five most viewed published posts. The three queries run concurrently.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		counts  *store.DashboardCounts
		recent  []store.ContactSummary
		popular []store.BlogSummary
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		counts, err = h.analytics.Counts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = h.analytics.RecentContacts(ctx, 5)
		return err
	})
	g.Go(func() error {
		var err error
		popular, err = h.analytics.PopularBlogs(ctx, 5)
		return err
	})

	if err := g.Wait(); err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	_ = h.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"data": envelope{
			"counts":         counts,
			"recentContacts": recent,
			"popularBlogs":   popular,
		},
	}, nil)
}
