package testutil

import (
	"testing"

	"github.com/localnerve/gemstonesdb/internal/database"
	"gorm.io/gorm"
)

// SetupTestDB opens a migrated in-memory SQLite database with foreign keys enforced
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite://:memory:", database.Options{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// ScriptedGenerator replays fixed content. Ints are consumed in order by Intn,
// which is called once per gemstone owner, once per user for K, and once per draw.
type ScriptedGenerator struct {
	Usernames []string
	Gemstones [][2]string // name, color
	Ints      []int
	Text      string

	users, gems, colors, ints int
}

func (g *ScriptedGenerator) Username() string {
	name := g.Usernames[g.users%len(g.Usernames)]
	g.users++
	return name
}

func (g *ScriptedGenerator) GemstoneName(_ []string) string {
	name := g.Gemstones[g.gems%len(g.Gemstones)][0]
	g.gems++
	return name
}

func (g *ScriptedGenerator) Color() string {
	color := g.Gemstones[g.colors%len(g.Gemstones)][1]
	g.colors++
	return color
}

func (g *ScriptedGenerator) Paragraph() string {
	if g.Text == "" {
		return "lorem ipsum"
	}
	return g.Text
}

func (g *ScriptedGenerator) Intn(n int) int {
	if g.ints >= len(g.Ints) {
		return 0
	}
	v := g.Ints[g.ints] % n
	g.ints++
	return v
}
