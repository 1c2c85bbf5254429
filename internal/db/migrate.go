package db

import (
	"context"
	"embed"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending *.up.sql in name order. A
// migration and its schema_migrations record commit together, so a
// failed statement leaves the version unrecorded and the file
// eligible for a retry.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := migrationsFS.ReadDir("migrations")
	if err != nil { return err }
	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version text PRIMARY KEY)`)
	if err != nil { return err }

	for _, f := range files {
		name := f.Name()
		if !strings.HasSuffix(name, ".up.sql") { continue }

		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)`, name).Scan(&exists); err != nil {
			return err
		}
		if exists { continue }

		b, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil { return err }

		tx, err := pool.Begin(ctx)
		if err != nil { return err }
		if _, err := tx.Exec(ctx, string(b)); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations(version) VALUES($1)`, name); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil { return err }
		slog.Info("migration applied", "version", name)
	}
	return nil
}
