package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
)

// EntryFormModel holds the string-typed form fields for an entry
type EntryFormModel struct {
	Text          string
	Mood          string
	SocialComfort string
	Regret        string
	At            string
}

// NewEntryFormModel pre-fills the form from e
func NewEntryFormModel(e models.Entry) *EntryFormModel {
	at := e.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	return &EntryFormModel{
		Text:          e.Text,
		Mood:          strconv.Itoa(e.Mood),
		SocialComfort: strconv.Itoa(e.SocialComfort),
		Regret:        strconv.Itoa(e.Regret),
		At:            at.Format(constants.DateTimeFormat),
	}
}

// Apply copies the form values onto e and validates the result
func (fm *EntryFormModel) Apply(e *models.Entry) error {
	var err error
	if e.Mood, err = strconv.Atoi(strings.TrimSpace(fm.Mood)); err != nil {
		return fmt.Errorf("invalid mood %q: %w", fm.Mood, err)
	}
	if e.SocialComfort, err = strconv.Atoi(strings.TrimSpace(fm.SocialComfort)); err != nil {
		return fmt.Errorf("invalid social comfort %q: %w", fm.SocialComfort, err)
	}
	if e.Regret, err = strconv.Atoi(strings.TrimSpace(fm.Regret)); err != nil {
		return fmt.Errorf("invalid regret %q: %w", fm.Regret, err)
	}
	if e.CreatedAt, err = time.ParseInLocation(constants.DateTimeFormat, strings.TrimSpace(fm.At), time.Local); err != nil {
		return fmt.Errorf("invalid time %q: %w", fm.At, err)
	}
	e.Text = strings.TrimSpace(fm.Text)
	return e.Validate()
}

func validateRating(name string) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		return models.ValidateRating(name, v)
	}
}

// NewEntryForm creates the form used to add or edit an entry
func NewEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What happened?").
				CharLimit(constants.MaxTextLength).
				Value(&fm.Text).
				Validate(func(s string) error {
					if utf8.RuneCountInString(s) > constants.MaxTextLength {
						return fmt.Errorf("keep it under %d characters", constants.MaxTextLength)
					}
					return nil
				}),
			huh.NewInput().
				Title("Mood (1-10)").
				Value(&fm.Mood).
				Validate(validateRating("mood")),
			huh.NewInput().
				Title("Social comfort (1-10)").
				Value(&fm.SocialComfort).
				Validate(validateRating("social comfort")),
			huh.NewInput().
				Title("Regret (1-10)").
				Value(&fm.Regret).
				Validate(validateRating("regret")),
			huh.NewInput().
				Title("When").
				Description("YYYY-MM-DD HH:MM").
				Value(&fm.At).
				Validate(func(s string) error {
					_, err := time.ParseInLocation(constants.DateTimeFormat, strings.TrimSpace(s), time.Local)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// RunEntryForm shows the form on the terminal and applies the answers to e
func RunEntryForm(e *models.Entry) error {
	fm := NewEntryFormModel(*e)
	if err := NewEntryForm(fm).Run(); err != nil {
		return err
	}
	return fm.Apply(e)
}
