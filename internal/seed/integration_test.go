//go:build integration

package seed_test

import (
	"context"
	"testing"

	"github.com/localnerve/gemstonesdb/internal/database"
	"github.com/localnerve/gemstonesdb/internal/models"
	"github.com/localnerve/gemstonesdb/internal/seed"
	"github.com/localnerve/gemstonesdb/internal/services"
	"github.com/localnerve/gemstonesdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetAndSeedContainers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	starters := map[string]func(context.Context, string) (*testutil.Database, error){
		"postgres": testutil.StartPostgres,
		"mariadb":  testutil.StartMariaDB,
	}

	for name, start := range starters {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			container, err := start(ctx, "")
			require.NoError(t, err)
			t.Cleanup(func() {
				if err := container.Terminate(ctx); err != nil {
					t.Logf("Failed to terminate %s container: %v", name, err)
				}
			})

			db, err := database.Open(container.URL, database.Options{ConnectionLimit: 5})
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.Close(db) })
			require.NoError(t, database.AutoMigrate(db))

			assert.True(t, db.Migrator().HasConstraint(&models.Gemstone{},
				models.ForeignKeyName("gemstones", "user_id", "users")))
			assert.True(t, db.Migrator().HasConstraint(&models.Review{},
				models.ForeignKeyName("reviews", "gemstone_id", "gemstones")))

			_, err = seed.ResetAndSeed(ctx, db, seed.WithSeed(11))
			require.NoError(t, err)
			result, err := seed.ResetAndSeed(ctx, db, seed.WithSeed(12))
			require.NoError(t, err)

			counts, err := services.CountAll(ctx, db)
			require.NoError(t, err)
			assert.EqualValues(t, seed.DefaultUsers, counts.Users)
			assert.EqualValues(t, seed.DefaultGemstones, counts.Gemstones)
			assert.Equal(t, result.Associations, counts.Associations)
			assert.Equal(t, result.Reviews, counts.Reviews)

			// removing every user cascades to everything else
			var ids []uint
			require.NoError(t, db.Model(&models.User{}).Pluck("id", &ids).Error)
			for _, id := range ids {
				_, err := services.DeleteUser(ctx, db, id)
				require.NoError(t, err)
			}

			counts, err = services.CountAll(ctx, db)
			require.NoError(t, err)
			assert.Equal(t, services.Counts{}, counts)
		})
	}
}
