package drill

import (
	"github.com/verte-zerg/tuidrill/internal/corpus"
	"github.com/verte-zerg/tuidrill/internal/generator"
)

// BuildPool flattens the tokens of every corpus line and shuffles them.
func BuildPool(lines []string, gen *generator.Generator) []string {
	var pool []string
	for _, line := range lines {
		pool = append(pool, corpus.Tokens(line)...)
	}
	gen.ShuffleWords(pool)
	return pool
}
