package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/seefood/backend/internal/domain"
)

// CatalogState tracks the lifecycle of the in-memory catalog snapshot.
type CatalogState int

const (
	CatalogEmpty CatalogState = iota
	CatalogLoading
	CatalogReady
)

// DefaultPageSize is the fixed page size of the product listing.
const DefaultPageSize = 10

// CatalogView holds the full fetched product list and derives a visible
// slice from it: search filters by description substring, pagination slices
// the filtered view. The snapshot is replaced wholesale on every successful
// load, never partially updated; when loads overlap, the last one to resolve
// wins.
type CatalogView struct {
	client      domain.CatalogClient
	pageSize    int
	snapshotTTL time.Duration
	now         func() time.Time

	mu         sync.RWMutex
	state      CatalogState
	catalog    []domain.Product
	filtered   []domain.Product
	query      string
	page       int
	totalPages int
	loadedAt   time.Time
}

// NewCatalogView creates a view over the given catalog source. A pageSize
// of zero or less falls back to DefaultPageSize.
func NewCatalogView(client domain.CatalogClient, pageSize int) *CatalogView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &CatalogView{
		client:     client,
		pageSize:   pageSize,
		now:        time.Now,
		state:      CatalogEmpty,
		page:       1,
		totalPages: 1,
	}
}

// SetSnapshotTTL makes Products re-fetch once the snapshot is older than
// ttl. Zero keeps snapshots until an explicit reload.
func (v *CatalogView) SetSnapshotTTL(ttl time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snapshotTTL = ttl
}

// Load fetches the full catalog and replaces the snapshot. On success the
// view becomes Ready with the filter cleared and the page reset to 1. On
// failure the previous snapshot (or the empty state) is kept and the error
// is returned; no retry happens here.
func (v *CatalogView) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.state == CatalogEmpty {
		v.state = CatalogLoading
	}
	v.mu.Unlock()

	products, err := v.client.FetchCatalog(ctx)
	if err != nil {
		v.mu.Lock()
		if v.state == CatalogLoading {
			v.state = CatalogEmpty
		}
		v.mu.Unlock()
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = CatalogReady
	v.catalog = products
	v.filtered = products
	v.query = ""
	v.page = 1
	v.totalPages = pageCount(len(products), v.pageSize)
	v.loadedAt = v.now()
	return nil
}

// Search applies a case-insensitive substring filter against each product's
// description and resets to page 1. A missing description never matches.
// Searching the same query twice yields the same result both times.
func (v *CatalogView) Search(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query = query
	v.filtered = filterByDescription(v.catalog, query)
	v.totalPages = pageCount(len(v.filtered), v.pageSize)
	v.page = 1
}

func filterByDescription(catalog []domain.Product, query string) []domain.Product {
	lowerQuery := strings.ToLower(query)
	return lo.Filter(catalog, func(p domain.Product, _ int) bool {
		if p.Description == "" {
			return false
		}
		return strings.Contains(strings.ToLower(p.Description), lowerQuery)
	})
}

// PageResult is one request-scoped page of the catalog.
type PageResult struct {
	Products   []domain.Product
	Page       int
	TotalPages int
	Total      int
	Query      string
}

// ViewPage filters and slices the snapshot in one lock acquisition without
// touching the shared filter state, so concurrent callers never observe
// each other's query or page. An out-of-range page falls back to page 1.
func (v *CatalogView) ViewPage(query string, page int) PageResult {
	v.mu.RLock()
	defer v.mu.RUnlock()

	filtered := filterByDescription(v.catalog, query)
	totalPages := pageCount(len(filtered), v.pageSize)
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * v.pageSize
	var products []domain.Product
	if start < len(filtered) {
		end := start + v.pageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		products = make([]domain.Product, end-start)
		copy(products, filtered[start:end])
	}

	return PageResult{
		Products:   products,
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
		Query:      query,
	}
}

// GoToPage moves the visible slice to page n. Out-of-range pages are a
// no-op; the pager is expected to only offer valid page numbers.
func (v *CatalogView) GoToPage(n int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 1 || n > v.totalPages {
		return false
	}
	v.page = n
	return true
}

// VisiblePage returns a copy of the current page's slice of the filtered
// view. Its length never exceeds the page size.
func (v *CatalogView) VisiblePage() []domain.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()

	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	page := make([]domain.Product, end-start)
	copy(page, v.filtered[start:end])
	return page
}

// Snapshot returns a copy of the full catalog, regardless of the active
// filter. Used by the recommender and the barcode matcher, which always
// operate on the whole snapshot.
func (v *CatalogView) Snapshot() []domain.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snapshot := make([]domain.Product, len(v.catalog))
	copy(snapshot, v.catalog)
	return snapshot
}

// Products returns the current snapshot, loading it first if the view has
// never been successfully loaded or the snapshot TTL has lapsed. A failed
// refresh of a stale-but-present snapshot falls back to the stale data.
func (v *CatalogView) Products(ctx context.Context) ([]domain.Product, error) {
	v.mu.RLock()
	ready := v.state == CatalogReady
	stale := ready && v.snapshotTTL > 0 && v.now().Sub(v.loadedAt) > v.snapshotTTL
	v.mu.RUnlock()

	if !ready {
		if err := v.Load(ctx); err != nil {
			return nil, err
		}
	} else if stale {
		if err := v.Load(ctx); err != nil {
			return v.Snapshot(), nil
		}
	}
	return v.Snapshot(), nil
}

// State reports the view's lifecycle state.
func (v *CatalogView) State() CatalogState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Query returns the active search query.
func (v *CatalogView) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Page returns the current page number, always within [1, TotalPages].
func (v *CatalogView) Page() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.page
}

// TotalPages returns the page count of the filtered view. An empty filtered
// set still reports one page so the pager is never empty.
func (v *CatalogView) TotalPages() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.totalPages
}

// FilteredCount returns the size of the filtered view.
func (v *CatalogView) FilteredCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.filtered)
}

// pageCount computes ceil(n/pageSize) with a floor of one page.
func pageCount(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
