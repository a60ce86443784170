package stats

import (
	"fmt"
	"io"
)

// Render writes the plain-text report printed by `moodlog stats`
func Render(w io.Writer, s Summary) error {
	if !s.HasData {
		_, err := fmt.Fprintln(w, "No entries yet. Add one with `moodlog add`.")
		return err
	}

	entryWord := "entries"
	if s.MostCommonMoodCount == 1 {
		entryWord = "entry"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Entries", fmt.Sprintf("%d", s.TotalCount)},
		{"Last 7 days", fmt.Sprintf("%d", s.CountLast7Days)},
		{"Last 30 days", fmt.Sprintf("%d", s.CountLast30Days)},
		{"Average mood", fmt.Sprintf("%.1f", s.AverageMood)},
		{"Average social comfort", fmt.Sprintf("%.1f", s.AverageSocialComfort)},
		{"Average regret", fmt.Sprintf("%.1f", s.AverageRegret)},
		{"Most common mood", fmt.Sprintf("%d (%d %s)", s.MostCommonMood, s.MostCommonMoodCount, entryWord)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-24s%s\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}
