package query

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/models"
)

var (
	// ErrLoadInProgress is returned by LoadFirstPage and Refresh while
	// another load on the same pipeline has not finished
	ErrLoadInProgress = stderrors.New("query: load already in progress")
	// ErrStalePage is returned by LoadNextPage when no first page has been
	// loaded under the current filter
	ErrStalePage = stderrors.New("query: no first page for current filter")
)

// Source supplies the full, ordered entry list. storage.Provider satisfies it.
type Source interface {
	ListEntries(ctx context.Context) ([]models.Entry, error)
}

// Page is one slice of the filtered view
type Page struct {
	Entries []models.Entry
	Index   int // zero-based page number
	HasMore bool
	Total   int // size of the filtered view
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithPageSize sets the number of entries per page. Non-positive values
// are ignored.
func WithPageSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// WithLocation sets the zone used for the date predicates
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// Pipeline filters and paginates a snapshot of the store's entries. The
// snapshot is fetched once and reused for every page until Refresh or
// Invalidate.
type Pipeline struct {
	src      Source
	pageSize int
	loc      *time.Location

	mu       sync.Mutex
	snapshot []models.Entry
	loaded   bool
	gen      uint64 // bumped by Invalidate
	filter   Filter
	view     []models.Entry
	current  bool // view was built under the current filter
	cursor   int  // next page index
	hasMore  bool
	loading  bool
}

func NewPipeline(src Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		src:      src,
		pageSize: constants.PageSize,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadFirstPage applies the current filter to the snapshot, fetching it
// first if needed, and returns page 0
func (p *Pipeline) LoadFirstPage(ctx context.Context) (Page, error) {
	return p.load(ctx, false)
}

// Refresh re-fetches the snapshot and returns page 0 under the current filter
func (p *Pipeline) Refresh(ctx context.Context) (Page, error) {
	return p.load(ctx, true)
}

func (p *Pipeline) load(ctx context.Context, refetch bool) (Page, error) {
	if err := errors.CheckContext(ctx); err != nil {
		return Page{}, err
	}

	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return Page{}, ErrLoadInProgress
	}
	if !refetch && p.loaded {
		defer p.mu.Unlock()
		return p.firstPageLocked(), nil
	}
	p.loading = true
	gen := p.gen
	p.mu.Unlock()

	entries, err := p.src.ListEntries(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		logger.Debug("Snapshot fetch failed", "error", err)
		return Page{}, err
	}
	p.snapshot = entries
	// An Invalidate during the fetch may postdate what was read
	p.loaded = gen == p.gen
	logger.Debug("Snapshot loaded", "entries", len(entries), "stale", !p.loaded)
	return p.firstPageLocked(), nil
}

// firstPageLocked rebuilds the view from the snapshot and returns page 0
func (p *Pipeline) firstPageLocked() Page {
	p.view = Apply(p.snapshot, p.filter, p.loc)
	p.current = true
	p.cursor = 0
	return p.nextLocked()
}

// LoadNextPage returns the next page of the view built by the last
// LoadFirstPage or Refresh. It returns an empty page when the view is
// exhausted or a load is in flight.
func (p *Pipeline) LoadNextPage(ctx context.Context) (Page, error) {
	if err := errors.CheckContext(ctx); err != nil {
		return Page{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loading {
		return Page{Index: p.cursor, HasMore: p.hasMore, Total: len(p.view)}, nil
	}
	if !p.current {
		return Page{}, ErrStalePage
	}
	if !p.hasMore {
		return Page{Index: p.cursor, HasMore: p.hasMore, Total: len(p.view)}, nil
	}
	return p.nextLocked(), nil
}

// nextLocked slices the page at cursor and advances it
func (p *Pipeline) nextLocked() Page {
	start := p.cursor * p.pageSize
	end := min(start+p.pageSize, len(p.view))
	if start > end {
		start = end
	}

	page := Page{
		Entries: make([]models.Entry, end-start),
		Index:   p.cursor,
		Total:   len(p.view),
	}
	copy(page.Entries, p.view[start:end])

	p.cursor++
	p.hasMore = end < len(p.view)
	page.HasMore = p.hasMore
	return page
}

// SetFilter replaces the active filter. LoadFirstPage must be called
// before further pages are served.
func (p *Pipeline) SetFilter(f Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = f
	p.resetViewLocked()
}

// ClearFilter removes every predicate
func (p *Pipeline) ClearFilter() {
	p.SetFilter(Filter{})
}

// Invalidate drops the snapshot so the next load re-fetches it. Hosts call
// this after writing to the store.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = nil
	p.loaded = false
	p.gen++
	p.resetViewLocked()
}

func (p *Pipeline) resetViewLocked() {
	p.view = nil
	p.current = false
	p.cursor = 0
	p.hasMore = false
}

func (p *Pipeline) Filter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

func (p *Pipeline) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *Pipeline) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Loaded reports whether a snapshot is held
func (p *Pipeline) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Total is the size of the current filtered view, or 0 before the first page
func (p *Pipeline) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.view)
}

func (p *Pipeline) PageSize() int {
	return p.pageSize
}
