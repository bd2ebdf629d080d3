package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/typemaster/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates leaderboard entries.
type Summary struct {
	Sessions    int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
	BestScore   int
}

// Summarize computes averages over entries.
func Summarize(entries []model.LeaderboardEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	var s Summary
	var totalWPM, totalAcc float64
	for _, e := range entries {
		totalWPM += float64(e.WPM)
		totalAcc += float64(e.Accuracy)
		if e.WPM > s.BestWPM {
			s.BestWPM = e.WPM
		}
		if e.Score > s.BestScore {
			s.BestScore = e.Score
		}
	}
	s.Sessions = len(entries)
	s.AvgWPM = totalWPM / float64(len(entries))
	s.AvgAccuracy = totalAcc / float64(len(entries))
	return s
}

// WPMByDate returns entry speeds ordered from oldest to newest.
func WPMByDate(entries []model.LeaderboardEntry) []float64 {
	ordered := make([]model.LeaderboardEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	out := make([]float64, len(ordered))
	for i, e := range ordered {
		out[i] = float64(e.WPM)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal-minVal < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
