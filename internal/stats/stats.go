// Package stats reduces a list of entries to summary numbers.
package stats

import (
	"math"
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
)

// Summary is the result of Compute. Averages are rounded to one decimal
// and are zero when HasData is false.
type Summary struct {
	TotalCount           int     `json:"total_count" yaml:"total_count"`
	HasData              bool    `json:"has_data" yaml:"has_data"`
	AverageMood          float64 `json:"average_mood" yaml:"average_mood"`
	AverageSocialComfort float64 `json:"average_social_comfort" yaml:"average_social_comfort"`
	AverageRegret        float64 `json:"average_regret" yaml:"average_regret"`
	CountLast7Days       int     `json:"count_last_7_days" yaml:"count_last_7_days"`
	CountLast30Days      int     `json:"count_last_30_days" yaml:"count_last_30_days"`
	MostCommonMood       int     `json:"most_common_mood" yaml:"most_common_mood"`
	MostCommonMoodCount  int     `json:"most_common_mood_count" yaml:"most_common_mood_count"`
}

type moodTally struct {
	count int
	first int // index of first occurrence
}

// Compute recomputes every metric from entries. Windows are inclusive of
// both now-window and now; entries dated after now are not counted.
func Compute(entries []models.Entry, now time.Time) Summary {
	s := Summary{TotalCount: len(entries)}
	if len(entries) == 0 {
		return s
	}
	s.HasData = true

	shortStart := now.Add(-constants.RecentWindowShort)
	longStart := now.Add(-constants.RecentWindowLong)

	var mood, social, regret int
	tallies := make(map[int]*moodTally)
	for i, e := range entries {
		mood += e.Mood
		social += e.SocialComfort
		regret += e.Regret

		if !e.CreatedAt.After(now) {
			if !e.CreatedAt.Before(shortStart) {
				s.CountLast7Days++
			}
			if !e.CreatedAt.Before(longStart) {
				s.CountLast30Days++
			}
		}

		t, ok := tallies[e.Mood]
		if !ok {
			t = &moodTally{first: i}
			tallies[e.Mood] = t
		}
		t.count++
	}

	n := float64(len(entries))
	s.AverageMood = round1(float64(mood) / n)
	s.AverageSocialComfort = round1(float64(social) / n)
	s.AverageRegret = round1(float64(regret) / n)

	best := -1
	for value, t := range tallies {
		if t.count > s.MostCommonMoodCount || (t.count == s.MostCommonMoodCount && t.first < best) {
			s.MostCommonMood = value
			s.MostCommonMoodCount = t.count
			best = t.first
		}
	}
	return s
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
