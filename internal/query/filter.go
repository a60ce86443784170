package query

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
)

// Filter is an AND of optional predicates. A nil bound or an empty Text
// matches everything.
type Filter struct {
	Text      string
	MinMood   *int
	MaxMood   *int
	StartDate *time.Time // inclusive, compared by calendar date
	EndDate   *time.Time // inclusive, compared by calendar date
}

// IsZero reports whether no predicate is active
func (f Filter) IsZero() bool {
	return f.Text == "" && f.MinMood == nil && f.MaxMood == nil && f.StartDate == nil && f.EndDate == nil
}

// Match reports whether e satisfies every active predicate. Dates are
// compared in loc.
func (f Filter) Match(e models.Entry, loc *time.Location) bool {
	return newMatcher(f, loc).match(e)
}

// Apply returns the entries matching f in their original order. A zero
// filter returns entries unchanged.
func Apply(entries []models.Entry, f Filter, loc *time.Location) []models.Entry {
	if f.IsZero() {
		return entries
	}
	m := newMatcher(f, loc)
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// matcher holds the per-filter work done once per Apply call
type matcher struct {
	f      Filter
	loc    *time.Location
	caser  cases.Caser
	needle string
	start  string
	end    string
}

func newMatcher(f Filter, loc *time.Location) *matcher {
	if loc == nil {
		loc = time.Local
	}
	m := &matcher{f: f, loc: loc, caser: cases.Fold()}
	if f.Text != "" {
		m.needle = m.fold(f.Text)
	}
	// DateFormat sorts lexically, so string comparison orders days
	if f.StartDate != nil {
		m.start = f.StartDate.In(loc).Format(constants.DateFormat)
	}
	if f.EndDate != nil {
		m.end = f.EndDate.In(loc).Format(constants.DateFormat)
	}
	return m
}

func (m *matcher) fold(s string) string {
	return m.caser.String(norm.NFC.String(s))
}

func (m *matcher) match(e models.Entry) bool {
	if m.f.MinMood != nil && e.Mood < *m.f.MinMood {
		return false
	}
	if m.f.MaxMood != nil && e.Mood > *m.f.MaxMood {
		return false
	}
	if m.start != "" || m.end != "" {
		day := e.Day(m.loc)
		if m.start != "" && day < m.start {
			return false
		}
		if m.end != "" && day > m.end {
			return false
		}
	}
	if m.needle != "" && !strings.Contains(m.fold(e.Text), m.needle) {
		return false
	}
	return true
}
