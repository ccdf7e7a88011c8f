package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/seefood/backend/internal/domain"
)

// DefaultScanCooldown is the window after a processed scan during which
// further scan events are ignored, preventing duplicate rapid-fire lookups
// for the same physical scan gesture.
const DefaultScanCooldown = 3 * time.Second

// CatalogSource yields the product snapshot a scan is matched against.
type CatalogSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Scanner resolves scanned or typed barcodes against the catalog. Codes are
// matched by bidirectional substring containment rather than strict
// equality, which tolerates differing check-digit/prefix conventions; the
// first catalog-order match wins.
type Scanner struct {
	catalog  CatalogSource
	cooldown time.Duration
	now      func() time.Time

	mu      sync.Mutex
	busy    bool
	readyAt time.Time
}

// NewScanner creates a scanner over the given catalog source. A cooldown of
// zero or less falls back to DefaultScanCooldown.
func NewScanner(catalog CatalogSource, cooldown time.Duration) *Scanner {
	if cooldown <= 0 {
		cooldown = DefaultScanCooldown
	}
	return &Scanner{
		catalog:  catalog,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Lookup resolves a scanned or typed code to a catalog product. Events that
// arrive while a lookup is in flight, or before the cooldown after the last
// processed scan has elapsed, return ErrScanCooldown. An empty code is a
// validation failure and never reaches the catalog.
func (s *Scanner) Lookup(ctx context.Context, code string) (*domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty barcode", domain.ErrValidation)
	}

	s.mu.Lock()
	if s.busy || s.now().Before(s.readyAt) {
		s.mu.Unlock()
		return nil, domain.ErrScanCooldown
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.readyAt = s.now().Add(s.cooldown)
		s.mu.Unlock()
	}()

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	if product, ok := MatchBarcode(products, code); ok {
		return product, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, code)
}

// MatchBarcode finds the first catalog-order product whose stored barcode
// contains the code or is contained by it. Products without a barcode never
// match.
func MatchBarcode(products []domain.Product, code string) (*domain.Product, bool) {
	for i := range products {
		stored := strings.TrimSpace(products[i].Barcode)
		if stored == "" {
			continue
		}
		if strings.Contains(stored, code) || strings.Contains(code, stored) {
			return &products[i], true
		}
	}
	return nil, false
}

// FindByBarcode finds a product by strict barcode equality, as used by the
// detail view where the code comes from the catalog itself.
func FindByBarcode(products []domain.Product, barcode string) (*domain.Product, bool) {
	for i := range products {
		if products[i].Barcode == barcode {
			return &products[i], true
		}
	}
	return nil, false
}
