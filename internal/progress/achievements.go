package progress

import "github.com/verte-zerg/typemaster/internal/model"

// Achievement is a one-time milestone.
type Achievement struct {
	ID          string
	Title       string
	Description string
	reached     func(p model.UserProgress, res model.SessionResult) bool
}

// Achievements lists every milestone in display order.
var Achievements = []Achievement{
	{
		ID:          "first-session",
		Title:       "First Steps",
		Description: "Finish your first session",
		reached:     func(model.UserProgress, model.SessionResult) bool { return true },
	},
	{
		ID:          "speed-demon",
		Title:       "Speed Demon",
		Description: "Reach 50 WPM",
		reached: func(_ model.UserProgress, res model.SessionResult) bool {
			return res.WPM >= 50
		},
	},
	{
		ID:          "perfect-game",
		Title:       "Perfectionist",
		Description: "Finish a session with 100% accuracy",
		reached: func(_ model.UserProgress, res model.SessionResult) bool {
			return res.Accuracy == 100
		},
	},
	{
		ID:          "streak-master",
		Title:       "Streak Master",
		Description: "Keep a streak of 7 sessions",
		reached: func(p model.UserProgress, _ model.SessionResult) bool {
			return p.Streak >= 7
		},
	},
	{
		ID:          "marathoner",
		Title:       "Marathoner",
		Description: "Finish 50 sessions",
		reached: func(p model.UserProgress, _ model.SessionResult) bool {
			return p.SessionsPlayed >= 50
		},
	},
}

// EvaluateAchievements returns ids reached by p after res that p has not unlocked yet.
func EvaluateAchievements(p model.UserProgress, res model.SessionResult) []string {
	have := make(map[string]struct{}, len(p.Achievements))
	for _, id := range p.Achievements {
		have[id] = struct{}{}
	}
	var out []string
	for _, a := range Achievements {
		if _, ok := have[a.ID]; ok {
			continue
		}
		if a.reached(p, res) {
			out = append(out, a.ID)
		}
	}
	return out
}

// AchievementByID looks up a milestone.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
