package random

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"

	"github.com/wapi/api/internal/model"
)

// DefaultBounds holds the exclusive upper bound of random-source row keys for
// each word length of the published English lists. They must be kept in step
// with the imported data when bounds are not computed from the store.
var DefaultBounds = map[int]int{
	5: 8885,
	6: 15720,
	7: 23950,
}

// Counter reports the number of rows in a table partition.
type Counter interface {
	Count(ctx context.Context, table, partition string) (int64, error)
}

// Generator picks random-source row keys. It is safe for concurrent use.
type Generator struct {
	bounds map[int]int
	intN   func(n int) int
}

func NewGenerator(bounds map[int]int) *Generator {
	b := make(map[int]int, len(bounds))
	for size, bound := range bounds {
		b[size] = bound
	}
	return &Generator{bounds: b, intN: rand.IntN}
}

// Index returns a row key in [1, bound) for the given length. Repeats
// between calls are allowed.
func (g *Generator) Index(size int) int {
	bound := g.bounds[size]
	if bound <= 2 {
		return 1
	}
	return 1 + g.intN(bound-1)
}

func (g *Generator) Bounds() map[int]int {
	b := make(map[int]int, len(g.bounds))
	for size, bound := range g.bounds {
		b[size] = bound
	}
	return b
}

// LoadBounds derives bounds from the random-source row counts. Rows are
// keyed 1..N, so the bound is N+1. Empty partitions keep the default bound.
func LoadBounds(ctx context.Context, c Counter) (map[int]int, error) {
	bounds := make(map[int]int, len(DefaultBounds))
	for size := model.MinWordSize; size <= model.MaxWordSize; size++ {
		n, err := c.Count(ctx, model.TableRandom, strconv.Itoa(size))
		if err != nil {
			return nil, fmt.Errorf("failed to count random words of size %d: %w", size, err)
		}
		if n == 0 {
			log.Printf("No random words of size %d in store, using default bound %d", size, DefaultBounds[size])
			bounds[size] = DefaultBounds[size]
			continue
		}
		bounds[size] = int(n) + 1
	}
	return bounds, nil
}
