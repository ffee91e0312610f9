package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

// Facet names used in logs and metrics.
const (
	facetMakes         = "makes"
	facetModels        = "models"
	facetFuelTypes     = "fuelTypes"
	facetDriveTypes    = "driveTypes"
	facetTransmissions = "transmissions"
)

type CatalogOptions struct {
	FeaturedLimit int
	LatestLimit   int
}

// CatalogUsecase assembles catalog pages from the content store.
type CatalogUsecase struct {
	store   ListingStore
	logger  *logger.Logger
	metrics Metrics
	tracer  trace.Tracer
	opts    CatalogOptions
}

func NewCatalogUsecase(store ListingStore, log *logger.Logger, m Metrics, opts CatalogOptions) *CatalogUsecase {
	if opts.FeaturedLimit <= 0 {
		opts.FeaturedLimit = 6
	}
	if opts.LatestLimit <= 0 {
		opts.LatestLimit = 8
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &CatalogUsecase{
		store:   store,
		logger:  log.Named("CatalogUsecase"),
		metrics: m,
		tracer:  otel.Tracer("github.com/goodmenmotors/catalog-service/internal/catalog/usecase"),
		opts:    opts,
	}
}

// Search returns the result page for f. Facet lookups that fail degrade to
// empty option lists. When the listing or count read fails the returned page
// is still usable (no listings, options filled where possible) and the error
// wraps domain.ErrCatalogUnavailable.
func (uc *CatalogUsecase) Search(ctx context.Context, f domain.FilterState) (*domain.ResultPage, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.Search",
		trace.WithAttributes(attribute.String("catalog.query", f.Encode())))
	defer span.End()

	page := &domain.ResultPage{Listings: []domain.Listing{}}

	// Selected models must belong to a selected make. Resolve the model
	// options first so the list and count reads below run with the pruned
	// selection. This is one sequential store read, taken only when models
	// are selected; the result is reused for the models facet.
	var models domain.Set[string]
	modelsFetched := false
	if f.Makes.Len() > 0 && f.Models.Len() > 0 {
		var ok bool
		models, ok = uc.modelOptions(ctx, f.Makes)
		modelsFetched = true
		if ok {
			if pruned, changed := f.RetainModels(models); changed {
				uc.logger.Debug("Dropped models outside the selected makes",
					zap.Strings("requested", f.Models), zap.Strings("kept", pruned.Models))
				f = pruned
				page.Pruned = true
			}
		}
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		listings []domain.Listing
		total    int64
		listErr  error
		countErr error
	)

	inverted := f.InvertedRanges()
	if len(inverted) == 0 {
		g.Go(func() error {
			ls, err := uc.store.Find(ctx, query.List(f))
			mu.Lock()
			listings, listErr = ls, err
			mu.Unlock()
			return nil
		})
		g.Go(func() error {
			n, err := uc.store.Count(ctx, query.Count(f).Where)
			mu.Lock()
			total, countErr = n, err
			mu.Unlock()
			return nil
		})
	} else {
		for _, r := range inverted {
			page.Notices = append(page.Notices, fmt.Sprintf("%s: %v", r, domain.ErrInvertedRange))
		}
	}

	var opts domain.FacetOptions
	g.Go(func() error {
		opts.Makes = uc.facet(ctx, facetMakes, query.FieldMake)
		return nil
	})
	g.Go(func() error {
		opts.FuelTypes = enumFacet(uc.facet(ctx, facetFuelTypes, query.FieldFuelType), domain.FuelType.Valid)
		return nil
	})
	g.Go(func() error {
		opts.DriveTypes = enumFacet(uc.facet(ctx, facetDriveTypes, query.FieldDriveType), domain.DriveType.Valid)
		return nil
	})
	g.Go(func() error {
		opts.Transmissions = enumFacet(uc.facet(ctx, facetTransmissions, query.FieldTransmission), domain.Transmission.Valid)
		return nil
	})
	if f.Makes.Len() > 0 && !modelsFetched {
		g.Go(func() error {
			opts.Models, _ = uc.modelOptions(ctx, f.Makes)
			return nil
		})
	} else {
		opts.Models = models
	}
	_ = g.Wait()

	page.Options = opts
	page.Filter = f
	page.CanonicalQuery = f.Encode()

	if err := errors.Join(listErr, countErr); err != nil {
		if listErr != nil {
			uc.metrics.StoreFetchFailed("list")
		}
		if countErr != nil {
			uc.metrics.StoreFetchFailed("count")
		}
		uc.logger.Error("Failed to read catalog page", zap.Error(err), zap.String("query", page.CanonicalQuery))
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		page.Pagination = domain.NewPagination(f.Page, f.PageSize, 0)
		return page, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	if listings != nil {
		page.Listings = listings
	}
	// Count and list are separate reads; never report fewer records than
	// the page itself shows.
	if seen := f.Offset() + int64(len(page.Listings)); len(page.Listings) > 0 && total < seen {
		uc.logger.Debug("Count lagged behind listing read", zap.Int64("count", total), zap.Int64("seen", seen))
		total = seen
	}
	page.Pagination = domain.NewPagination(f.Page, f.PageSize, total)

	path := "unfiltered"
	if f.HasFilters() {
		path = "filtered"
	}
	span.SetAttributes(attribute.Int64("catalog.total", total), attribute.String("catalog.path", path))
	uc.logger.Debug("Catalog page assembled",
		zap.String("path", path),
		zap.String("query", page.CanonicalQuery),
		zap.Int("results", len(page.Listings)),
		zap.Int64("total", total))
	return page, nil
}

// facet reads the distinct values of field across unsold listings. A failed
// read degrades to an empty list.
func (uc *CatalogUsecase) facet(ctx context.Context, name string, field query.Field) domain.Set[string] {
	values, err := uc.store.Distinct(ctx, field, query.Base())
	if err != nil {
		uc.degraded(name, err)
		return nil
	}
	return cleanSet(values)
}

// modelOptions unions the models of each make. ok is false when any lookup
// failed; the models that could be read are still returned.
func (uc *CatalogUsecase) modelOptions(ctx context.Context, makes domain.Set[string]) (domain.Set[string], bool) {
	var (
		g   errgroup.Group
		mu  sync.Mutex
		all []string
		ok  = true
	)
	for _, mk := range makes {
		g.Go(func() error {
			values, err := uc.store.Distinct(ctx, query.FieldModel, query.ModelOptions(mk))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uc.degraded(facetModels, fmt.Errorf("make %q: %w", mk, err))
				ok = false
				return nil
			}
			all = append(all, values...)
			return nil
		})
	}
	_ = g.Wait()
	return cleanSet(all), ok
}

func (uc *CatalogUsecase) degraded(facet string, err error) {
	uc.metrics.FacetDegraded(facet)
	uc.logger.Warn("Facet option lookup failed, serving empty list", zap.String("facet", facet), zap.Error(err))
}

// Models returns the models of the given makes, or of every unsold listing
// when makes is empty. Failures degrade to an empty list.
func (uc *CatalogUsecase) Models(ctx context.Context, makes domain.Set[string]) domain.Set[string] {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.Models")
	defer span.End()

	if makes.Len() == 0 {
		return uc.facet(ctx, facetModels, query.FieldModel)
	}
	models, _ := uc.modelOptions(ctx, makes)
	return models
}

// Featured returns the newest unsold listings for the home page.
func (uc *CatalogUsecase) Featured(ctx context.Context) ([]domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.Featured")
	defer span.End()

	ls, err := uc.store.Find(ctx, query.Latest(uc.opts.FeaturedLimit))
	if err != nil {
		uc.metrics.StoreFetchFailed("featured")
		uc.logger.Error("Failed to read featured listings", zap.Error(err))
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return nonNil(ls), nil
}

// LatestArrivals is like Featured with a longer list, and degrades to an
// empty list instead of failing.
func (uc *CatalogUsecase) LatestArrivals(ctx context.Context) []domain.Listing {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.LatestArrivals")
	defer span.End()

	ls, err := uc.store.Find(ctx, query.Latest(uc.opts.LatestLimit))
	if err != nil {
		uc.metrics.StoreFetchFailed("latest")
		uc.logger.Warn("Failed to read latest arrivals, serving none", zap.Error(err))
		return []domain.Listing{}
	}
	return nonNil(ls)
}

// GetBySlug returns one listing, sold or not.
func (uc *CatalogUsecase) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	ctx, span := uc.tracer.Start(ctx, "CatalogUsecase.GetBySlug", trace.WithAttributes(attribute.String("listing.slug", slug)))
	defer span.End()

	if !domain.ValidSlug(slug) {
		return nil, domain.ErrListingNotFound
	}
	l, err := uc.store.FindBySlug(ctx, slug)
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return nil, err
	case err != nil:
		uc.metrics.StoreFetchFailed("slug")
		uc.logger.Error("Failed to read listing", zap.String("slug", slug), zap.Error(err))
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return l, nil
}

func cleanSet(values []string) domain.Set[string] {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if domain.Selectable(v) {
			out = append(out, v)
		}
	}
	return domain.NewSet(out...)
}

func enumFacet[T ~string](values domain.Set[string], valid func(T) bool) domain.Set[T] {
	var out []T
	for _, v := range values {
		if e := T(v); valid(e) {
			out = append(out, e)
		}
	}
	return domain.NewSet(out...)
}

func nonNil(ls []domain.Listing) []domain.Listing {
	if ls == nil {
		return []domain.Listing{}
	}
	return ls
}
