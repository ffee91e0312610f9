// Package memory serves listings from a JSON fixture held in memory. It
// evaluates queries with query.Match, the same semantics as the MongoDB store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

type ListingRepository struct {
	mu       sync.RWMutex
	listings []domain.Listing
	logger   *logger.Logger
}

func NewListingRepository(listings []domain.Listing, log *logger.Logger) *ListingRepository {
	r := &ListingRepository{logger: log.Named("MemoryListingRepository")}
	r.Replace(listings)
	return r
}

// LoadFile reads a JSON array of listings from path.
func LoadFile(path string, log *logger.Logger) (*ListingRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures %s: %w", path, err)
	}
	r := NewListingRepository(listings, log)
	r.logger.Info("Loaded listing fixtures", zap.String("path", path), zap.Int("count", len(listings)))
	return r, nil
}

// Replace swaps the whole data set.
func (r *ListingRepository) Replace(listings []domain.Listing) {
	now := time.Now()
	out := make([]domain.Listing, len(listings))
	for i, l := range listings {
		l.Normalize()
		if err := l.Validate(now); err != nil {
			r.logger.Warn("Fixture listing failed validation", zap.String("slug", l.Slug), zap.Error(err))
		}
		out[i] = l
	}
	r.mu.Lock()
	r.listings = out
	r.mu.Unlock()
}

func (r *ListingRepository) Find(ctx context.Context, q query.Query) ([]domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return query.Apply(r.listings, q), nil
}

func (r *ListingRepository) Count(ctx context.Context, where []query.Clause) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for i := range r.listings {
		if query.Match(&r.listings[i], where) {
			n++
		}
	}
	return n, nil
}

func (r *ListingRepository) Distinct(ctx context.Context, field query.Field, where []query.Clause) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for i := range r.listings {
		l := &r.listings[i]
		if !query.Match(l, where) {
			continue
		}
		if v, ok := query.StringValue(l, field); ok && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *ListingRepository) FindBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.listings {
		if r.listings[i].Slug == slug {
			l := r.listings[i]
			return &l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}
