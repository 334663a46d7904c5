package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/ghuser/bomlabel/pkg/config"
	"github.com/ghuser/bomlabel/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

// Usage: go run ./migrations/label [up|status]
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS); err != nil {
			panic(err)
		}
	case "status":
		db, err := migrator.Open(cfg.DatabaseURL)
		if err != nil {
			panic(err)
		}
		defer db.Close() //nolint:errcheck
		current, latest, err := migrator.Pending(db, MigrationsFS)
		if err != nil {
			panic(err)
		}
		fmt.Printf("database version %d, latest migration %d\n", current, latest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want up or status)\n", cmd)
		os.Exit(2)
	}
}
