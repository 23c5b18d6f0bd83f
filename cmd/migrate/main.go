// migrate applies or rolls back the embedded schema migrations against
// DATABASE_URL; use go run ./cmd/migrate. cmd/server also runs "up" on boot,
// so this exists mainly for rollbacks and for migrating without starting
// the API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"demo-bank/backend/internal/config"
	"demo-bank/backend/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	if err := migrate.Run(cfg.DatabaseURL, *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("schema already at target version")
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied:", *direction)
}
