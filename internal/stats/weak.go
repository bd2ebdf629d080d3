package stats

import (
	"sort"
	"unicode"

	"github.com/verte-zerg/typemaster/internal/model"
)

// SelectWeakChars picks the runes that occur most often across the review list.
// A top of zero or less keeps every rune.
func SelectWeakChars(words []model.Word, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	counts := map[rune]int{}
	for _, w := range words {
		for _, r := range w.Text {
			if unicode.IsSpace(r) {
				continue
			}
			counts[r]++
		}
	}
	if len(counts) == 0 {
		return weakSet
	}
	candidates := make([]rune, 0, len(counts))
	for r := range counts {
		candidates = append(candidates, r)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := counts[candidates[i]], counts[candidates[j]]
		if ci == cj {
			return candidates[i] < candidates[j]
		}
		return ci > cj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, r := range candidates[:top] {
		weakSet[r] = struct{}{}
	}
	return weakSet
}
