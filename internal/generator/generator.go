// Package generator provides the randomness behind drill passes.
package generator

import (
	"math/rand"
	"sync"
	"time"
)

// Generator produces uniform shuffles. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// ShuffleWords permutes words in place; every permutation is equally likely.
func (g *Generator) ShuffleWords(words []string) {
	g.shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

// ShuffleRunes permutes runes in place.
func (g *Generator) ShuffleRunes(runes []rune) {
	g.shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rnd.Shuffle(n, swap)
}
