package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/spicebox/waitlist-api/internal/adapters/postgres"
	"github.com/spicebox/waitlist-api/internal/adapters/postgres/migrations"
)

// OpenMigratedPool connects to DATABASE_URL and applies the schema.
// Tests are skipped when DATABASE_URL is unset so the default test run stays local.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping postgres test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrations.Apply(ctx, pool); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}
