// Package export writes the journal to a portable JSON or YAML document.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/stats"
)

const documentVersion = "1"

// Format is an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.InvalidArgument("unknown export format %q", s)
}

// Source is the read side of the store
type Source interface {
	ListEntries(ctx context.Context) ([]models.Entry, error)
	GetPreferences(ctx context.Context) (models.Preferences, bool, error)
}

// Document is the exported journal
type Document struct {
	ID          string              `json:"id" yaml:"id"`
	Version     string              `json:"version" yaml:"version"`
	Tool        string              `json:"tool" yaml:"tool"`
	ExportedAt  time.Time           `json:"exported_at" yaml:"exported_at"`
	Preferences *models.Preferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
	Summary     stats.Summary       `json:"summary" yaml:"summary"`
	Entries     []models.Entry      `json:"entries" yaml:"entries"`
}

// Build collects every entry and the saved preferences, newest entry first
func Build(ctx context.Context, src Source, now time.Time) (Document, error) {
	entries, err := src.ListEntries(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to list entries: %w", err)
	}
	prefs, found, err := src.GetPreferences(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	doc := Document{
		ID:         uuid.New().String(),
		Version:    documentVersion,
		Tool:       constants.AppName,
		ExportedAt: now,
		Summary:    stats.Compute(entries, now),
		Entries:    entries,
	}
	if found {
		doc.Preferences = &prefs
	}
	return doc, nil
}

// Encode writes doc to w in the given format
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.InvalidArgument("unknown export format %q", format)
}

// Decode reads a document written by Encode
func Decode(r io.Reader, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, errors.InvalidArgument("unknown export format %q", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to decode %s export: %w", format, err)
	}
	return doc, nil
}

// WriteFile encodes doc to path, creating parent directories
func WriteFile(path string, doc Document, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, doc, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
