package mongodb

import (
	"time"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

// listingDocument is the stored form of a listing.
type listingDocument struct {
	ID      string `bson:"_id"`
	DocType string `bson:"doc_type"`
	Slug    string `bson:"slug"`
	Title   string `bson:"title"`
	Make    string `bson:"make"`
	Model   string `bson:"model"`
	Year    int    `bson:"year"`

	Price           float64  `bson:"price"`
	Status          string   `bson:"status"`
	DeliveryRegions []string `bson:"delivery_regions,omitempty"`
	OriginCountry   string   `bson:"origin_country,omitempty"`

	Mileage            *float64 `bson:"mileage,omitempty"`
	MileageUnit        string   `bson:"mileage_unit,omitempty"`
	EngineDisplacement *float64 `bson:"engine_displacement,omitempty"`
	EngineLayout       string   `bson:"engine_layout,omitempty"`
	FuelType           string   `bson:"fuel_type,omitempty"`
	DriveType          string   `bson:"drive_type,omitempty"`
	Transmission       string   `bson:"transmission,omitempty"`
	WindowsTinted      bool     `bson:"windows_tinted,omitempty"`

	Features     []string `bson:"features,omitempty"`
	DamageTags   []string `bson:"damage_tags,omitempty"`
	PrimaryUse   string   `bson:"primary_use,omitempty"`
	SecondaryUse string   `bson:"secondary_use,omitempty"`

	MainImage *imageDocument  `bson:"main_image,omitempty"`
	Gallery   []imageDocument `bson:"gallery,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type imageDocument struct {
	AssetRef string `bson:"asset_ref"`
	Alt      string `bson:"alt,omitempty"`
}

func toListingDocument(l *domain.Listing) *listingDocument {
	if l == nil {
		return nil
	}
	d := &listingDocument{
		ID:                 l.ID,
		DocType:            domain.DocumentType,
		Slug:               l.Slug,
		Title:              l.Title,
		Make:               l.Make,
		Model:              l.Model,
		Year:               l.Year,
		Price:              l.Price,
		Status:             string(l.Status),
		DeliveryRegions:    l.DeliveryRegions,
		OriginCountry:      l.OriginCountry,
		Mileage:            l.Mileage,
		MileageUnit:        string(l.MileageUnit),
		EngineDisplacement: l.EngineDisplacement,
		EngineLayout:       l.EngineLayout,
		FuelType:           string(l.FuelType),
		DriveType:          string(l.DriveType),
		Transmission:       string(l.Transmission),
		WindowsTinted:      l.WindowsTinted,
		Features:           l.Features,
		DamageTags:         l.DamageTags,
		PrimaryUse:         l.PrimaryUse,
		SecondaryUse:       l.SecondaryUse,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
	if l.MainImage != nil {
		d.MainImage = &imageDocument{AssetRef: l.MainImage.AssetRef, Alt: l.MainImage.Alt}
	}
	for _, img := range l.Gallery {
		d.Gallery = append(d.Gallery, imageDocument{AssetRef: img.AssetRef, Alt: img.Alt})
	}
	return d
}

// toDomainListing converts and normalizes a stored listing.
func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	l := &domain.Listing{
		ID:                 d.ID,
		Slug:               d.Slug,
		Title:              d.Title,
		Make:               d.Make,
		Model:              d.Model,
		Year:               d.Year,
		Price:              d.Price,
		Status:             domain.ListingStatus(d.Status),
		DeliveryRegions:    d.DeliveryRegions,
		OriginCountry:      d.OriginCountry,
		Mileage:            d.Mileage,
		MileageUnit:        domain.MileageUnit(d.MileageUnit),
		EngineDisplacement: d.EngineDisplacement,
		EngineLayout:       d.EngineLayout,
		FuelType:           domain.FuelType(d.FuelType),
		DriveType:          domain.DriveType(d.DriveType),
		Transmission:       domain.Transmission(d.Transmission),
		WindowsTinted:      d.WindowsTinted,
		Features:           d.Features,
		DamageTags:         d.DamageTags,
		PrimaryUse:         d.PrimaryUse,
		SecondaryUse:       d.SecondaryUse,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.MainImage != nil && d.MainImage.AssetRef != "" {
		l.MainImage = &domain.Image{AssetRef: d.MainImage.AssetRef, Alt: d.MainImage.Alt}
	}
	for _, img := range d.Gallery {
		if img.AssetRef != "" {
			l.Gallery = append(l.Gallery, domain.Image{AssetRef: img.AssetRef, Alt: img.Alt})
		}
	}
	l.Normalize()
	return l
}

func toDomainListings(docs []*listingDocument) []domain.Listing {
	out := make([]domain.Listing, 0, len(docs))
	for _, d := range docs {
		if l := toDomainListing(d); l != nil {
			out = append(out, *l)
		}
	}
	return out
}
