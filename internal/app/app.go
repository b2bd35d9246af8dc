package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/config"
	"github.com/hlstech/website/internal/mailer"
	"github.com/hlstech/website/internal/store"
)

type App struct {
	config           *config.Config
	logger           *slog.Logger
	pool             *pgxpool.Pool
	tokens           *auth.TokenIssuer
	adminStore       *store.AdminStore
	projectStore     *store.ProjectStore
	blogStore        *store.BlogStore
	serviceStore     *store.ServiceStore
	testimonialStore *store.TestimonialStore
	contactStore     *store.ContactStore
	newsletterStore  *store.NewsletterStore
	analyticsStore   *store.AnalyticsStore
	mailer           *mailer.Mailer
	mailQueue        *mailer.Queue
}

func (app *App) Close() {
	app.pool.Close()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	ctx := context.Background()
	pool, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	adminStore := store.NewAdminStore(pool)
	auth.SeedFirstAdmin(ctx, adminStore)

	m := mailer.New(&mailer.Config{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		User:        cfg.SMTPUser,
		Pass:        cfg.SMTPPass,
		FromEmail:   cfg.SMTPFromEmail,
		FromName:    cfg.SMTPFromName,
		NotifyEmail: cfg.NotifyEmail,
	})

	return &App{
		config:           cfg,
		logger:           logger,
		pool:             pool,
		tokens:           auth.NewTokenIssuer(cfg.JWTSecret),
		adminStore:       adminStore,
		projectStore:     store.NewProjectStore(pool),
		blogStore:        store.NewBlogStore(pool),
		serviceStore:     store.NewServiceStore(pool),
		testimonialStore: store.NewTestimonialStore(pool),
		contactStore:     store.NewContactStore(pool),
		newsletterStore:  store.NewNewsletterStore(pool),
		analyticsStore:   store.NewAnalyticsStore(pool),
		mailer:           m,
		mailQueue:        mailer.NewQueue(m, 2*time.Second, 64, 2),
	}, nil
}

func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("server failed", "error", err)
		}
		return nil
	})

	// The queue drains pending mail before returning, so it runs inside the
	// group and holds shutdown open until the last message is attempted.
	g.Go(func() error {
		app.mailQueue.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo

	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
