package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
	tracer     trace.Tracer
}

func NewListingRepository(db *mongo.Database, collection string, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection(collection),
		logger:     log.Named("MongoListingRepository"),
		tracer:     otel.Tracer("github.com/goodmenmotors/catalog-service/internal/adapter/repository/mongodb"),
	}
}

func (r *ListingRepository) Collection() *mongo.Collection { return r.collection }

func (r *ListingRepository) span(ctx context.Context, op string, where []query.Clause) (context.Context, trace.Span) {
	text, _ := query.WhereTemplate(where)
	return r.tracer.Start(ctx, "ListingRepository."+op, trace.WithAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection.name", r.collection.Name()),
		attribute.String("db.query.text", text),
	))
}

func (r *ListingRepository) Find(ctx context.Context, q query.Query) ([]domain.Listing, error) {
	ctx, span := r.span(ctx, "Find", q.Where)
	defer span.End()

	filter, err := compileFilter(q.Where)
	if err != nil {
		return nil, err
	}
	findOptions := options.Find().SetSort(compileSort(q.Sort))
	if q.Offset > 0 {
		findOptions.SetSkip(q.Offset)
	}
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Find failed", zap.Error(err))
		return nil, fmt.Errorf("ListingRepository.Find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		r.logger.Error("Cursor All failed", zap.Error(err))
		return nil, fmt.Errorf("ListingRepository.Find: decode: %w", err)
	}
	span.SetAttributes(attribute.Int("db.response.returned_rows", len(docs)))
	return toDomainListings(docs), nil
}

func (r *ListingRepository) Count(ctx context.Context, where []query.Clause) (int64, error) {
	ctx, span := r.span(ctx, "Count", where)
	defer span.End()

	filter, err := compileFilter(where)
	if err != nil {
		return 0, err
	}
	n, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("CountDocuments failed", zap.Error(err))
		return 0, fmt.Errorf("ListingRepository.Count: %w", err)
	}
	return n, nil
}

func (r *ListingRepository) Distinct(ctx context.Context, field query.Field, where []query.Clause) ([]string, error) {
	ctx, span := r.span(ctx, "Distinct", where)
	defer span.End()
	span.SetAttributes(attribute.String("catalog.facet_field", string(field)))

	filter, err := compileFilter(where)
	if err != nil {
		return nil, err
	}
	raw, err := r.collection.Distinct(ctx, string(field), filter)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Distinct failed", zap.String("field", string(field)), zap.Error(err))
		return nil, fmt.Errorf("ListingRepository.Distinct(%s): %w", field, err)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ListingRepository) FindBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	ctx, span := r.tracer.Start(ctx, "ListingRepository.FindBySlug", trace.WithAttributes(attribute.String("listing.slug", slug)))
	defer span.End()

	filter := bson.D{
		{Key: "doc_type", Value: bson.D{{Key: "$eq", Value: domain.DocumentType}}},
		{Key: "slug", Value: bson.D{{Key: "$eq", Value: slug}}},
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		span.RecordError(err)
		r.logger.Error("FindOne failed", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("ListingRepository.FindBySlug: %w", err)
	}
	return toDomainListing(&doc), nil
}

// Upsert writes listings by id. The catalog itself never writes; this serves
// seeding and tests.
func (r *ListingRepository) Upsert(ctx context.Context, listings ...domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, len(listings))
	for i := range listings {
		doc := toListingDocument(&listings[i])
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: doc.ID}}).
			SetReplacement(doc).
			SetUpsert(true)
	}
	if _, err := r.collection.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("ListingRepository.Upsert: %w", err)
	}
	return nil
}
