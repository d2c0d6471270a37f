package seed_test

import (
	"context"
	"testing"

	"github.com/localnerve/gemstonesdb/internal/models"
	"github.com/localnerve/gemstonesdb/internal/seed"
	"github.com/localnerve/gemstonesdb/internal/services"
	"github.com/localnerve/gemstonesdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestResetAndSeedCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	result, err := seed.ResetAndSeed(ctx, db, seed.WithSeed(42))
	require.NoError(t, err)

	counts, err := services.CountAll(ctx, db)
	require.NoError(t, err)

	assert.EqualValues(t, 10, counts.Users)
	assert.EqualValues(t, 50, counts.Gemstones)
	assert.Equal(t, result.Associations, counts.Associations)
	assert.Equal(t, result.Reviews, counts.Reviews)
	assert.GreaterOrEqual(t, counts.Reviews, counts.Associations)
	assert.LessOrEqual(t, counts.Reviews, int64(10*seed.DefaultMaxCollected))
	assert.EqualValues(t, 42, result.Seed)
	assert.NotEmpty(t, result.RunID)
}

func TestResetAndSeedReferentialIntegrity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := seed.ResetAndSeed(ctx, db, seed.WithSeed(7))
	require.NoError(t, err)

	t.Run("NoDanglingReviews", func(t *testing.T) {
		var dangling int64
		err := db.Raw(`SELECT COUNT(*) FROM reviews r
			LEFT JOIN users u ON u.id = r.user_id
			LEFT JOIN gemstones g ON g.id = r.gemstone_id
			WHERE u.id IS NULL OR g.id IS NULL`).Scan(&dangling).Error
		require.NoError(t, err)
		assert.Zero(t, dangling)
	})

	t.Run("EveryGemstoneOwned", func(t *testing.T) {
		var orphans int64
		err := db.Raw(`SELECT COUNT(*) FROM gemstones g
			LEFT JOIN users u ON u.id = g.user_id
			WHERE u.id IS NULL`).Scan(&orphans).Error
		require.NoError(t, err)
		assert.Zero(t, orphans)
	})

	t.Run("GemstoneNamesFromVocabulary", func(t *testing.T) {
		var names []string
		require.NoError(t, db.Model(&models.Gemstone{}).Distinct().Pluck("gemstone_name", &names).Error)
		for _, name := range names {
			assert.Contains(t, seed.Vocabulary(), name)
		}
	})

	t.Run("CollectedPerUserBetweenOneAndFive", func(t *testing.T) {
		type row struct {
			UserID uint
			N      int
		}
		var rows []row
		err := db.Raw(`SELECT u.id AS user_id, COUNT(ug.gemstones_id) AS n
			FROM users u LEFT JOIN user_gemstones ug ON ug.users_id = u.id
			GROUP BY u.id`).Scan(&rows).Error
		require.NoError(t, err)
		require.Len(t, rows, 10)
		for _, r := range rows {
			assert.GreaterOrEqual(t, r.N, 1, "user %d", r.UserID)
			assert.LessOrEqual(t, r.N, 5, "user %d", r.UserID)
		}
	})

	t.Run("EveryReviewMatchesAnAssociation", func(t *testing.T) {
		var unmatched int64
		err := db.Raw(`SELECT COUNT(*) FROM reviews r
			LEFT JOIN user_gemstones ug ON ug.users_id = r.user_id AND ug.gemstones_id = r.gemstone_id
			WHERE ug.users_id IS NULL`).Scan(&unmatched).Error
		require.NoError(t, err)
		assert.Zero(t, unmatched)
	})
}

func TestResetAndSeedTwiceKeepsCardinality(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	first, err := seed.ResetAndSeed(ctx, db, seed.WithSeed(1))
	require.NoError(t, err)
	second, err := seed.ResetAndSeed(ctx, db, seed.WithSeed(2))
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)

	counts, err := services.CountAll(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 10, counts.Users)
	assert.EqualValues(t, 50, counts.Gemstones)
	assert.Equal(t, second.Reviews, counts.Reviews)
	assert.Equal(t, second.Associations, counts.Associations)

	var runs int64
	require.NoError(t, db.Model(&models.SeedRun{}).Count(&runs).Error)
	assert.EqualValues(t, 2, runs)
}

func TestResetAndSeedSameSeedSameContent(t *testing.T) {
	ctx := context.Background()

	usernames := func() []string {
		db := testutil.SetupTestDB(t)
		_, err := seed.ResetAndSeed(ctx, db, seed.WithSeed(99))
		require.NoError(t, err)
		var names []string
		require.NoError(t, db.Model(&models.User{}).Order("id").Pluck("username", &names).Error)
		return names
	}

	assert.Equal(t, usernames(), usernames())
}

// alice owns Ruby and collects it, bob owns Opal and collects Opal then Ruby
func TestResetAndSeedScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	gen := &testutil.ScriptedGenerator{
		Usernames: []string{"alice", "bob"},
		Gemstones: [][2]string{{"Ruby", "red"}, {"Opal", "white"}},
		// owners: Ruby->alice, Opal->bob; alice K=1 draws Ruby; bob K=2 draws Opal, Ruby
		Ints: []int{0, 1, 0, 0, 1, 1, 0},
	}

	result, err := seed.ResetAndSeed(ctx, db, seed.WithGenerator(gen), seed.WithCounts(2, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Associations)
	assert.EqualValues(t, 3, result.Reviews)
	assert.Equal(t, map[string]int{"Ruby": 1, "Opal": 1}, result.Distribution)

	counts, err := services.CountAll(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, services.Counts{Users: 2, Gemstones: 2, Reviews: 3, Associations: 3}, counts)

	ids := lookupIDs(t, db)
	want := [][2]uint{
		{ids["alice"], ids["Ruby"]},
		{ids["bob"], ids["Opal"]},
		{ids["bob"], ids["Ruby"]},
	}

	var links []models.UserGemstone
	require.NoError(t, db.Find(&links).Error)
	got := make([][2]uint, 0, len(links))
	for _, l := range links {
		got = append(got, [2]uint{l.UsersID, l.GemstonesID})
	}
	assert.ElementsMatch(t, want, got)

	var reviews []models.Review
	require.NoError(t, db.Find(&reviews).Error)
	pairs := make([][2]uint, 0, len(reviews))
	for _, r := range reviews {
		pairs = append(pairs, [2]uint{r.UserID, r.GemstoneID})
	}
	assert.ElementsMatch(t, want, pairs)

	var ruby models.Gemstone
	require.NoError(t, db.First(&ruby, ids["Ruby"]).Error)
	assert.Equal(t, "red", ruby.Color)
	assert.Equal(t, ids["alice"], ruby.UserID)
}

func TestResetAndSeedRepeatedDrawAddsReviewOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	gen := &testutil.ScriptedGenerator{
		Usernames: []string{"carol"},
		Gemstones: [][2]string{{"Topaz", "blue"}},
		// owner, K=3, then the single gemstone three times
		Ints: []int{0, 2, 0, 0, 0},
	}

	result, err := seed.ResetAndSeed(ctx, db, seed.WithGenerator(gen), seed.WithCounts(1, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Associations)
	assert.EqualValues(t, 3, result.Reviews)
}

// A generator that never yields a fresh name exhausts the redraw limit
// before any user is inserted.
func TestResetAndSeedRedrawLimitAborts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := services.CreateUser(ctx, db, "survivor")
	require.NoError(t, err)

	gen := &testutil.ScriptedGenerator{
		Usernames: []string{"same"},
		Gemstones: [][2]string{{"Quartz", "clear"}},
	}
	_, err = seed.ResetAndSeed(ctx, db, seed.WithGenerator(gen), seed.WithCounts(2, 1))
	require.Error(t, err)

	// the clear phase committed before the failing phase
	counts, err := services.CountAll(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, counts.Users)
}

// claimingGenerator inserts the first name it emits before returning it, so the
// name is already taken when the users phase commits.
type claimingGenerator struct {
	*testutil.ScriptedGenerator
	db      *gorm.DB
	t       *testing.T
	claimed bool
}

func (g *claimingGenerator) Username() string {
	name := g.ScriptedGenerator.Username()
	if !g.claimed {
		g.claimed = true
		_, err := services.CreateUser(context.Background(), g.db, name)
		require.NoError(g.t, err)
	}
	return name
}

func TestResetAndSeedUniqueIndexAborts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	gen := &claimingGenerator{
		ScriptedGenerator: &testutil.ScriptedGenerator{
			Usernames: []string{"taken", "free"},
			Gemstones: [][2]string{{"Quartz", "clear"}},
		},
		db: db,
		t:  t,
	}

	_, err := seed.ResetAndSeed(ctx, db, seed.WithGenerator(gen), seed.WithCounts(2, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.ErrorContains(t, err, "create users")

	// the users phase rolled back as a whole
	var names []string
	require.NoError(t, db.Model(&models.User{}).Pluck("username", &names).Error)
	assert.Equal(t, []string{"taken"}, names)

	counts, err := services.CountAll(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, counts.Gemstones)
}

func TestResetAndSeedRejectsInvalidCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := seed.ResetAndSeed(context.Background(), db, seed.WithCounts(0, 50))
	assert.Error(t, err)

	_, err = seed.ResetAndSeed(context.Background(), db, seed.WithMaxCollected(0))
	assert.Error(t, err)
}

func TestClearEmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	assert.NoError(t, seed.Clear(db))
}

func TestVocabulary(t *testing.T) {
	vocabulary := seed.Vocabulary()
	assert.Len(t, vocabulary, 14)
	assert.Contains(t, vocabulary, "Lapis Lazuli")
	assert.Contains(t, vocabulary, "Tsavorite")
}

func lookupIDs(t *testing.T, db *gorm.DB) map[string]uint {
	t.Helper()

	ids := make(map[string]uint)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	for _, u := range users {
		ids[u.Username] = u.ID
	}

	var gems []models.Gemstone
	require.NoError(t, db.Find(&gems).Error)
	for _, g := range gems {
		ids[g.GemstoneName] = g.ID
	}

	return ids
}
