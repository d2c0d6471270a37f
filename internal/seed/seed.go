package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/localnerve/gemstonesdb/internal/logger"
	"github.com/localnerve/gemstonesdb/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultUsers        = 10
	DefaultGemstones    = 50
	DefaultMaxCollected = 5

	// usernameAttempts bounds redraws when the generator repeats a username
	usernameAttempts = 100
)

// Result summarizes a completed fixture load
type Result struct {
	RunID        string         `json:"runId"`
	Seed         int64          `json:"seed"`
	Users        int64          `json:"users"`
	Gemstones    int64          `json:"gemstones"`
	Associations int64          `json:"associations"`
	Reviews      int64          `json:"reviews"`
	Distribution map[string]int `json:"distribution"`
}

type options struct {
	seed         int64
	users        int
	gemstones    int
	maxCollected int
	generator    Generator
	log          *logger.Logger
}

// Option configures ResetAndSeed
type Option func(*options)

// WithSeed fixes the generator seed so a run can be reproduced
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithGenerator replaces the gofakeit generator
func WithGenerator(g Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithCounts overrides the number of users and gemstones created
func WithCounts(users, gemstones int) Option {
	return func(o *options) {
		o.users = users
		o.gemstones = gemstones
	}
}

// WithMaxCollected overrides the upper bound of gemstones drawn per user
func WithMaxCollected(n int) Option {
	return func(o *options) { o.maxCollected = n }
}

// WithLogger logs each phase
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// ResetAndSeed clears users, gemstones, reviews and user_gemstones, then loads
// random fixtures. Every phase commits before the next one starts:
//
//  1. delete user_gemstones, users, gemstones, reviews
//  2. create the users
//  3. create the gemstones, each owned by a random user
//  4. for each user draw K in [1, max] gemstones, collect each one not yet
//     collected and write one review per draw
//
// A failure aborts the run and leaves the last committed phase in place.
// ResetAndSeed is a single-writer batch job and must not run concurrently
// with itself or with live traffic against the same database.
func ResetAndSeed(ctx context.Context, db *gorm.DB, opts ...Option) (*Result, error) {
	o := options{
		users:        DefaultUsers,
		gemstones:    DefaultGemstones,
		maxCollected: DefaultMaxCollected,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.users < 1 || o.gemstones < 1 || o.maxCollected < 1 {
		return nil, fmt.Errorf("seed: counts must be positive (users=%d gemstones=%d max=%d)",
			o.users, o.gemstones, o.maxCollected)
	}
	if o.seed == 0 && o.generator == nil {
		o.seed = rand.Int64()
	}
	if o.generator == nil {
		o.generator = NewFakeGenerator(o.seed)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}

	db = db.WithContext(ctx)
	log := o.log.With("seed", o.seed)

	log.Info("Clearing existing rows")
	if err := Clear(db); err != nil {
		return nil, err
	}

	users, err := createUsers(db, o.generator, o.users)
	if err != nil {
		return nil, err
	}
	log.Info("Created users", "count", len(users))

	gems, err := createGemstones(db, o.generator, users, o.gemstones)
	if err != nil {
		return nil, err
	}
	log.Info("Created gemstones", "count", len(gems))

	links, reviews, err := collectAndReview(db, o.generator, users, gems, o.maxCollected)
	if err != nil {
		return nil, err
	}
	log.Info("Created associations and reviews", "associations", links, "reviews", reviews)

	result := &Result{
		RunID:        uuid.NewString(),
		Seed:         o.seed,
		Users:        int64(len(users)),
		Gemstones:    int64(len(gems)),
		Associations: links,
		Reviews:      reviews,
		Distribution: distribution(gems),
	}
	if err := recordRun(db, result); err != nil {
		return nil, err
	}

	return result, nil
}

// Clear deletes every row of the four schema tables in one transaction.
// The association goes first, then its endpoints, so no constraint is violated.
func Clear(db *gorm.DB) error {
	tables := []struct {
		name  string
		model interface{}
	}{
		{models.UserGemstonesTable, &models.UserGemstone{}},
		{"users", &models.User{}},
		{"gemstones", &models.Gemstone{}},
		{"reviews", &models.Review{}},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, table := range tables {
			if err := all.Delete(table.model).Error; err != nil {
				return fmt.Errorf("seed: clear %s: %w", table.name, err)
			}
		}
		return nil
	})
}

func createUsers(db *gorm.DB, g Generator, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	seen := make(map[string]struct{}, n)

	for len(users) < n {
		name, err := uniqueUsername(g, seen)
		if err != nil {
			return nil, err
		}
		seen[name] = struct{}{}
		users = append(users, models.User{Username: name})
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&users).Error
	}); err != nil {
		return nil, fmt.Errorf("seed: create users: %w", err)
	}

	return users, nil
}

func uniqueUsername(g Generator, seen map[string]struct{}) (string, error) {
	for range usernameAttempts {
		name := g.Username()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; !dup {
			return name, nil
		}
	}
	return "", errors.New("seed: generator did not produce a unique username")
}

func createGemstones(db *gorm.DB, g Generator, owners []models.User, n int) ([]models.Gemstone, error) {
	vocabulary := Vocabulary()
	gems := make([]models.Gemstone, n)

	for i := range gems {
		gems[i] = models.Gemstone{
			GemstoneName: g.GemstoneName(vocabulary),
			Color:        g.Color(),
			UserID:       owners[g.Intn(len(owners))].ID,
		}
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&gems).Error
	}); err != nil {
		return nil, fmt.Errorf("seed: create gemstones: %w", err)
	}

	return gems, nil
}

func collectAndReview(db *gorm.DB, g Generator, users []models.User, gems []models.Gemstone, maxCollected int) (int64, int64, error) {
	var (
		links   []models.UserGemstone
		reviews []models.Review
	)

	for _, user := range users {
		collected := make(map[uint]struct{})
		k := 1 + g.Intn(maxCollected)
		for range k {
			gem := gems[g.Intn(len(gems))]
			if _, ok := collected[gem.ID]; !ok {
				collected[gem.ID] = struct{}{}
				links = append(links, models.UserGemstone{UsersID: user.ID, GemstonesID: gem.ID})
			}

			content := g.Paragraph()
			reviews = append(reviews, models.Review{
				Content:    &content,
				UserID:     user.ID,
				GemstoneID: gem.ID,
			})
		}
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("associations: %w", err)
		}
		if err := tx.Create(&reviews).Error; err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		return nil
	}); err != nil {
		return 0, 0, fmt.Errorf("seed: create %w", err)
	}

	return int64(len(links)), int64(len(reviews)), nil
}

func distribution(gems []models.Gemstone) map[string]int {
	counts := make(map[string]int)
	for _, gem := range gems {
		counts[gem.GemstoneName]++
	}
	return counts
}

func recordRun(db *gorm.DB, result *Result) error {
	summary, err := models.NewJSON(result.Distribution)
	if err != nil {
		return fmt.Errorf("seed: encode summary: %w", err)
	}

	run := models.SeedRun{
		RunID:        result.RunID,
		Seed:         result.Seed,
		Users:        result.Users,
		Gemstones:    result.Gemstones,
		Associations: result.Associations,
		Reviews:      result.Reviews,
		Summary:      summary,
	}
	if err := db.Create(&run).Error; err != nil {
		return fmt.Errorf("seed: record run: %w", err)
	}
	return nil
}
