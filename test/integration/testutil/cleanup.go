//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all mutable tables. Divisions and seeded events survive:
// they are reference data from the seed migration.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"event_outbox",
		"donors",
		"sponsors",
		"fighters",
		"users",
	}

	for _, table := range tables {
		_, _ = env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
}
