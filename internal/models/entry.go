package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
)

// Entry is a single dated journal record
type Entry struct {
	ID            int64     `json:"id" yaml:"id"` // 0 until the store assigns one
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	Text          string    `json:"text" yaml:"text"`
	Mood          int       `json:"mood" yaml:"mood"`                     // 1-10
	SocialComfort int       `json:"social_comfort" yaml:"social_comfort"` // 1-10
	Regret        int       `json:"regret" yaml:"regret"`                 // 1-10
}

// IsPersisted reports whether the store has assigned an id
func (e Entry) IsPersisted() bool {
	return e.ID != 0
}

// Validate checks the caller-side contract for an entry. The store itself
// accepts any values.
func (e Entry) Validate() error {
	if n := utf8.RuneCountInString(e.Text); n > constants.MaxTextLength {
		return errors.InvalidArgument("text is %d characters, maximum is %d", n, constants.MaxTextLength)
	}
	if e.CreatedAt.IsZero() {
		return errors.InvalidArgument("created_at is required")
	}
	for _, r := range []struct {
		name  string
		value int
	}{
		{"mood", e.Mood},
		{"social_comfort", e.SocialComfort},
		{"regret", e.Regret},
	} {
		if err := ValidateRating(r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRating checks that value lies in the rating domain
func ValidateRating(name string, value int) error {
	if value < constants.MinRating || value > constants.MaxRating {
		return errors.InvalidArgument("%s must be between %d and %d, got %d",
			name, constants.MinRating, constants.MaxRating, value)
	}
	return nil
}

// Day returns the calendar date of CreatedAt in loc
func (e Entry) Day(loc *time.Location) string {
	return e.CreatedAt.In(loc).Format(constants.DateFormat)
}

func (e Entry) String() string {
	return fmt.Sprintf("#%d %s mood=%d social=%d regret=%d",
		e.ID, e.CreatedAt.Format(constants.DateTimeFormat), e.Mood, e.SocialComfort, e.Regret)
}
