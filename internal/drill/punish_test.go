package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/tuidrill/internal/generator"
)

func TestSpliceInsertsAfterQuestionSpan(t *testing.T) {
	pool := []string{"cat", "sat", "mat", "hat"}
	out := Splice(pool, 2, []rune{'a', 't', 'a'}, generator.NewSeeded(3))

	assert.Len(t, out, 7)
	assert.Equal(t, []string{"cat", "sat"}, out[:2])
	assert.ElementsMatch(t, []string{"a", "t", "a"}, out[2:5])
	assert.Equal(t, []string{"mat", "hat"}, out[5:])
}

func TestSpliceAtPoolEnd(t *testing.T) {
	out := Splice([]string{"cat"}, 1, []rune{'c'}, generator.NewSeeded(1))
	assert.Equal(t, []string{"cat", "c"}, out)
}

func TestSpliceNoMismatchesLeavesPoolUnchanged(t *testing.T) {
	pool := []string{"cat", "sat"}
	out := Splice(pool, 1, nil, generator.NewSeeded(1))
	assert.Equal(t, pool, out)
}

func TestSpliceKeepsBatchOrder(t *testing.T) {
	batch := []rune{'x', 'y', 'z', 'w'}
	Splice([]string{"a"}, 1, batch, generator.NewSeeded(9))
	assert.Equal(t, []rune{'x', 'y', 'z', 'w'}, batch)
}

func TestSpliceAtMostTruncatesShuffledBatch(t *testing.T) {
	pool := []string{"cat", "sat"}
	out, n := SpliceAtMost(pool, 1, []rune{'c', 'a', 't', 'x'}, 2, generator.NewSeeded(4))

	assert.Equal(t, 2, n)
	assert.Len(t, out, 4)
	assert.Equal(t, "cat", out[0])
	assert.Equal(t, "sat", out[3])
	for _, tok := range out[1:3] {
		assert.Contains(t, []string{"c", "a", "t", "x"}, tok)
	}
}

func TestSpliceAtMostZeroLimitInsertsNothing(t *testing.T) {
	pool := []string{"cat"}
	out, n := SpliceAtMost(pool, 1, []rune{'c'}, 0, generator.NewSeeded(1))
	assert.Zero(t, n)
	assert.Equal(t, pool, out)
}
