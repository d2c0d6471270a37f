package seed

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/localnerve/gemstonesdb/data"
)

// Generator supplies the random content of a fixture load
type Generator interface {
	Username() string
	GemstoneName(vocabulary []string) string
	Color() string
	Paragraph() string
	// Intn returns a uniform integer in [0, n)
	Intn(n int) int
}

// Vocabulary returns the fixed list of gemstone names
var Vocabulary = sync.OnceValue(func() []string {
	var names []string
	for _, line := range strings.Split(data.GemstoneNames, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
})

type fakeGenerator struct {
	faker *gofakeit.Faker
}

// NewFakeGenerator returns a gofakeit backed Generator. Equal seeds produce equal content.
func NewFakeGenerator(seed int64) Generator {
	return &fakeGenerator{faker: gofakeit.New(uint64(seed))}
}

func (g *fakeGenerator) Username() string {
	return g.faker.Username()
}

func (g *fakeGenerator) GemstoneName(vocabulary []string) string {
	return g.faker.RandomString(vocabulary)
}

func (g *fakeGenerator) Color() string {
	return g.faker.Color()
}

func (g *fakeGenerator) Paragraph() string {
	return g.faker.Paragraph(1, 4, 10, " ")
}

func (g *fakeGenerator) Intn(n int) int {
	return g.faker.Number(0, n-1)
}
