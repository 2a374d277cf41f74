package drill

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/tuidrill/internal/generator"
)

func TestBuildPoolIsPermutationOfTokens(t *testing.T) {
	lines := []string{"the quick brown", "fox  jumps", "", "over the lazy dog"}
	want := []string{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}

	for seed := int64(0); seed < 10; seed++ {
		pool := BuildPool(lines, generator.NewSeeded(seed))
		got := append([]string(nil), pool...)
		sort.Strings(got)
		sorted := append([]string(nil), want...)
		sort.Strings(sorted)
		assert.Equal(t, sorted, got)
	}
}

func TestBuildPoolShufflesAcrossSeeds(t *testing.T) {
	lines := []string{"a b c d e f g h"}
	first := BuildPool(lines, generator.NewSeeded(1))
	differs := false
	for seed := int64(2); seed < 12; seed++ {
		if !assert.ObjectsAreEqual(first, BuildPool(lines, generator.NewSeeded(seed))) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "expected different orders for different seeds")
}

func TestBuildPoolEmptyCorpus(t *testing.T) {
	assert.Empty(t, BuildPool(nil, generator.NewSeeded(1)))
	assert.Empty(t, BuildPool([]string{"", "   "}, generator.NewSeeded(1)))
}

func TestBuildPoolCatSat(t *testing.T) {
	pool := BuildPool([]string{"cat sat"}, generator.New())
	assert.ElementsMatch(t, []string{"cat", "sat"}, pool)
}
