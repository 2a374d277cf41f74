package drill

import "github.com/verte-zerg/tuidrill/internal/generator"

// Splice shuffles the mistyped characters and inserts them as one-character
// words at pool[at], ahead of any word the finished question did not cover.
func Splice(pool []string, at int, batch []rune, gen *generator.Generator) []string {
	out, _ := SpliceAtMost(pool, at, batch, len(batch), gen)
	return out
}

// SpliceAtMost is Splice keeping at most limit characters of the shuffled
// batch. It returns the new pool and the number of tokens inserted.
func SpliceAtMost(pool []string, at int, batch []rune, limit int, gen *generator.Generator) ([]string, int) {
	if len(batch) == 0 || limit <= 0 {
		return pool, 0
	}
	shuffled := append([]rune(nil), batch...)
	gen.ShuffleRunes(shuffled)
	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	tokens := make([]string, 0, len(shuffled))
	for _, r := range shuffled {
		tokens = append(tokens, string(r))
	}
	out := make([]string, 0, len(pool)+len(tokens))
	out = append(out, pool[:at]...)
	out = append(out, tokens...)
	out = append(out, pool[at:]...)
	return out, len(tokens)
}
