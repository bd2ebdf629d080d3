package progress

import (
	"sort"

	"github.com/verte-zerg/typemaster/internal/model"
)

// DefaultLeaderboardSize bounds the ranked list.
const DefaultLeaderboardSize = 10

// InsertLeaderboard appends entry, ranks by score descending and keeps the
// top size entries. Equal scores keep insertion order.
func InsertLeaderboard(entries []model.LeaderboardEntry, entry model.LeaderboardEntry, size int) []model.LeaderboardEntry {
	if size <= 0 {
		size = DefaultLeaderboardSize
	}
	out := make([]model.LeaderboardEntry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, entry)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > size {
		out = out[:size]
	}
	return out
}
