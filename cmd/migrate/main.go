package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/hlstech/website/internal/store"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	if err := store.Migrate(dbURL); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no pending migrations")
			return
		}
		slog.Error("migration failed", "err", err)
		os.Exit(1)
	}

	fmt.Println("migrations complete")
}
