package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Applies the SQL files in internal/migrations in name order, recording each
// in schema_migrations so reruns skip what has already been applied.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	apply := flag.Bool("apply", false, "apply pending migrations (default: list)")
	flag.Parse()

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
		     name VARCHAR PRIMARY KEY,
		     applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		 )`); err != nil {
		log.Fatalf("ensure ledger: %v", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		log.Fatalf("read ledger: %v", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Fatalf("read ledger: %v", err)
		}
		applied[name] = true
	}
	rows.Close()

	migDir := filepath.Join("internal", "migrations")
	entries, err := os.ReadDir(migDir)
	if err != nil {
		log.Fatalf("read migrations dir: %v", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		switch {
		case applied[name]:
			fmt.Printf("%s (applied)\n", name)
		case !*apply:
			fmt.Printf("%s (pending)\n", name)
		default:
			b, err := os.ReadFile(filepath.Join(migDir, name))
			if err != nil {
				log.Fatalf("read %s: %v", name, err)
			}
			if _, err := db.Exec(ctx, string(b)); err != nil {
				log.Fatalf("apply %s: %v", name, err)
			}
			if _, err := db.Exec(ctx,
				`INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
				log.Fatalf("record %s: %v", name, err)
			}
			fmt.Printf("applied %s\n", name)
		}
	}
}
