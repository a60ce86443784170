package models

import (
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
)

// Preferences holds the application-wide settings record. Only one exists.
type Preferences struct {
	ID              int       `json:"id" yaml:"id"` // Always constants.PreferencesID
	DisplayName     string    `json:"display_name" yaml:"display_name"`
	ReminderEnabled bool      `json:"reminder_enabled" yaml:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time" yaml:"reminder_time"` // HH:MM
	DarkMode        bool      `json:"dark_mode" yaml:"dark_mode"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

// DefaultPreferences returns the values used before anything was saved
func DefaultPreferences() Preferences {
	return Preferences{
		ID:              constants.PreferencesID,
		ReminderEnabled: constants.DefaultReminderEnabled,
		ReminderTime:    constants.DefaultReminderTime,
		DarkMode:        constants.DefaultDarkMode,
	}
}

// Validate checks the reminder time format
func (p Preferences) Validate() error {
	if p.ReminderTime == "" {
		return nil
	}
	if _, err := time.Parse(constants.TimeFormat, p.ReminderTime); err != nil {
		return errors.InvalidArgument("reminder time %q must be HH:MM", p.ReminderTime)
	}
	return nil
}
