package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/models"
)

var baseTime = time.Date(2026, 5, 10, 18, 45, 12, 123456789, time.UTC)

func newEntry(at time.Time, mood int) models.Entry {
	return models.Entry{
		CreatedAt:     at,
		Text:          "went to the climbing gym",
		Mood:          mood,
		SocialComfort: 6,
		Regret:        3,
	}
}

func assertSameEntry(t *testing.T, got, want models.Entry) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("ID = %d, want %d", got.ID, want.ID)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if got.Text != want.Text {
		t.Errorf("Text = %q, want %q", got.Text, want.Text)
	}
	if got.Mood != want.Mood || got.SocialComfort != want.SocialComfort || got.Regret != want.Regret {
		t.Errorf("ratings = (%d, %d, %d), want (%d, %d, %d)",
			got.Mood, got.SocialComfort, got.Regret, want.Mood, want.SocialComfort, want.Regret)
	}
}

func TestSaveEntry_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	e := newEntry(baseTime, 7)
	e.Text = "Ünïcödé text, with \"quotes\" and 'apostrophes'"

	saved, err := store.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("SaveEntry() did not assign an id")
	}
	if e.ID != 0 {
		t.Error("SaveEntry() must not mutate the caller's entry")
	}

	got, found, err := store.GetEntry(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if !found {
		t.Fatal("GetEntry() did not find saved entry")
	}

	want := e
	want.ID = saved.ID
	assertSameEntry(t, got, want)
}

func TestSaveEntry_Nil(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.SaveEntry(context.Background(), nil)
	if !errors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("SaveEntry(nil) = %v, want ErrInvalidArgument", err)
	}
}

func TestSaveEntry_TimeOutsideStorableRange(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name string
		at   time.Time
	}{
		{"zero", time.Time{}},
		{"before 1677", time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"after 2262", time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntry(tt.at, 5)
			if _, err := store.SaveEntry(ctx, &e); !errors.Is(err, errors.ErrInvalidArgument) {
				t.Errorf("SaveEntry() error = %v, want ErrInvalidArgument", err)
			}
		})
	}

	if n, err := store.CountEntries(ctx); err != nil || n != 0 {
		t.Errorf("CountEntries() = %d, %v; want 0, nil", n, err)
	}

	// Old dates inside the range still round trip
	edge := time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEntry(edge, 5)
	saved, err := store.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("SaveEntry(1700) failed: %v", err)
	}
	got, _, err := store.GetEntry(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if !got.CreatedAt.Equal(edge) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, edge)
	}
}

func TestSaveEntry_AssignsUniqueIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		e := newEntry(baseTime.Add(time.Duration(i)*time.Minute), i+1)
		saved, err := store.SaveEntry(ctx, &e)
		if err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
		if seen[saved.ID] {
			t.Fatalf("id %d assigned twice", saved.ID)
		}
		seen[saved.ID] = true
	}
}

func TestSaveEntry_IdsNotReusedAfterDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	e := newEntry(baseTime, 5)
	first, err := store.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if err := store.DeleteEntry(ctx, first.ID); err != nil {
		t.Fatalf("DeleteEntry() failed: %v", err)
	}

	second, err := store.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("deleted id %d was reassigned", first.ID)
	}
}

func TestSaveEntry_IdempotentUpsert(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	e := newEntry(baseTime, 5)
	saved, err := store.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	other := newEntry(baseTime.Add(-time.Hour), 2)
	if _, err := store.SaveEntry(ctx, &other); err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}

	edited := saved
	edited.Text = "actually it was fine"
	edited.Mood = 9
	edited.Regret = 1

	for i := 0; i < 2; i++ {
		if _, err := store.SaveEntry(ctx, &edited); err != nil {
			t.Fatalf("SaveEntry() update %d failed: %v", i, err)
		}
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListEntries() returned %d entries, want 2", len(entries))
	}

	got, found, err := store.GetEntry(ctx, saved.ID)
	if err != nil || !found {
		t.Fatalf("GetEntry() = found %v, err %v", found, err)
	}
	assertSameEntry(t, got, edited)
}

func TestSaveEntry_UnknownIDIsWrittenAsGiven(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	e := newEntry(baseTime, 3)
	e.ID = 500
	saved, err := store.SaveEntry(ctx, &e)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if saved.ID != 500 {
		t.Errorf("ID = %d, want 500", saved.ID)
	}

	next := newEntry(baseTime, 4)
	inserted, err := store.SaveEntry(ctx, &next)
	if err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
	if inserted.ID <= 500 {
		t.Errorf("new id %d should come after explicit id 500", inserted.ID)
	}
}

func TestListEntries_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	entries, err := store.ListEntries(context.Background())
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}
	if entries == nil {
		t.Error("ListEntries() returned nil, want empty slice")
	}
	if len(entries) != 0 {
		t.Errorf("ListEntries() returned %d entries, want 0", len(entries))
	}
}

func TestListEntries_NewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now()
	for _, at := range []time.Time{now.Add(-2 * time.Hour), now, now.Add(-time.Hour)} {
		e := newEntry(at, 5)
		if _, err := store.SaveEntry(ctx, &e); err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}
	want := []time.Time{now, now.Add(-time.Hour), now.Add(-2 * time.Hour)}
	if len(entries) != len(want) {
		t.Fatalf("ListEntries() returned %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if !entries[i].CreatedAt.Equal(w) {
			t.Errorf("entries[%d].CreatedAt = %v, want %v", i, entries[i].CreatedAt, w)
		}
	}
}

func TestListEntries_NonIncreasing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	offsets := []int{13, -4, 0, 27, 5, -30, 5, 18, 1, -4}
	for i, off := range offsets {
		e := newEntry(baseTime.Add(time.Duration(off)*time.Hour), i%10+1)
		if _, err := store.SaveEntry(ctx, &e); err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Errorf("entries[%d] (%v) is newer than entries[%d] (%v)",
				i, entries[i].CreatedAt, i-1, entries[i-1].CreatedAt)
		}
	}
}

func TestListEntries_EqualTimestampsByIDDesc(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		e := newEntry(baseTime, i+1)
		saved, err := store.SaveEntry(ctx, &e)
		if err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
		ids = append(ids, saved.ID)
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}
	for i, e := range entries {
		want := ids[len(ids)-1-i]
		if e.ID != want {
			t.Errorf("entries[%d].ID = %d, want %d", i, e.ID, want)
		}
	}
}

func TestGetEntry_Missing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	got, found, err := store.GetEntry(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetEntry() returned error for missing entry: %v", err)
	}
	if found {
		t.Errorf("GetEntry() found = true for missing entry: %v", got)
	}
}

func TestDeleteEntry(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var saved []models.Entry
	for i := 0; i < 3; i++ {
		e := newEntry(baseTime.Add(time.Duration(i)*time.Hour), i+1)
		s, err := store.SaveEntry(ctx, &e)
		if err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
		saved = append(saved, s)
	}

	t.Run("missing id is a no-op", func(t *testing.T) {
		before, err := store.ListEntries(ctx)
		if err != nil {
			t.Fatalf("ListEntries() failed: %v", err)
		}
		if err := store.DeleteEntry(ctx, 9999); err != nil {
			t.Fatalf("DeleteEntry() of missing id returned error: %v", err)
		}
		after, err := store.ListEntries(ctx)
		if err != nil {
			t.Fatalf("ListEntries() failed: %v", err)
		}
		if len(after) != len(before) {
			t.Fatalf("ListEntries() length changed from %d to %d", len(before), len(after))
		}
		for i := range before {
			assertSameEntry(t, after[i], before[i])
		}
	})

	t.Run("existing id is removed", func(t *testing.T) {
		if err := store.DeleteEntry(ctx, saved[1].ID); err != nil {
			t.Fatalf("DeleteEntry() failed: %v", err)
		}
		_, found, err := store.GetEntry(ctx, saved[1].ID)
		if err != nil {
			t.Fatalf("GetEntry() failed: %v", err)
		}
		if found {
			t.Error("deleted entry still found")
		}
		count, err := store.CountEntries(ctx)
		if err != nil {
			t.Fatalf("CountEntries() failed: %v", err)
		}
		if count != 2 {
			t.Errorf("CountEntries() = %d, want 2", count)
		}
	})
}

func TestStorageFailureIsReported(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := store.GetDB().Exec("DROP TABLE entries"); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	if _, err := store.ListEntries(ctx); !errors.Is(err, errors.ErrStorage) {
		t.Errorf("ListEntries() = %v, want ErrStorage", err)
	}
	e := newEntry(baseTime, 5)
	if _, err := store.SaveEntry(ctx, &e); !errors.Is(err, errors.ErrStorage) {
		t.Errorf("SaveEntry() = %v, want ErrStorage", err)
	}
	if _, _, err := store.GetEntry(ctx, 1); !errors.Is(err, errors.ErrStorage) {
		t.Errorf("GetEntry() = %v, want ErrStorage", err)
	}
}
