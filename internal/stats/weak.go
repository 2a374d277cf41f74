package stats

import (
	"sort"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// WeakChars returns up to top characters with at least one mistake, the most
// mistyped first.
func WeakChars(chars []model.CharStats, top int) []string {
	candidates := make([]model.CharStats, 0, len(chars))
	for _, c := range chars {
		if c.Incorrect > 0 {
			candidates = append(candidates, c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Incorrect != candidates[j].Incorrect {
			return candidates[i].Incorrect > candidates[j].Incorrect
		}
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Char < candidates[j].Char
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for i := 0; i < top; i++ {
		out = append(out, candidates[i].Char)
	}
	return out
}

func accuracy(c model.CharStats) float64 {
	total := c.Correct + c.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(c.Correct) / float64(total)
}
