package domain

import (
	"fmt"
	"regexp"
	"time"
)

// DocumentType is the content store type of vehicle listings.
const DocumentType = "carListing"

// MinModelYear is the year of the first production automobile.
const MinModelYear = 1885

type ListingStatus string

const (
	StatusInStock ListingStatus = "in_stock"
	StatusSold    ListingStatus = "sold"
)

type MileageUnit string

const (
	MileageKilometres MileageUnit = "km"
	MileageMiles      MileageUnit = "miles"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelOther    FuelType = "other"
)

var FuelTypes = []FuelType{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelOther}

func (f FuelType) Valid() bool {
	for _, v := range FuelTypes {
		if f == v {
			return true
		}
	}
	return false
}

type DriveType string

const (
	DriveFWD     DriveType = "fwd"
	DriveRWD     DriveType = "rwd"
	DriveAWD     DriveType = "awd"
	Drive4Matic  DriveType = "4matic"
	DriveXDrive  DriveType = "xdrive"
	DriveQuattro DriveType = "quattro"
)

var DriveTypes = []DriveType{DriveFWD, DriveRWD, DriveAWD, Drive4Matic, DriveXDrive, DriveQuattro}

func (d DriveType) Valid() bool {
	for _, v := range DriveTypes {
		if d == v {
			return true
		}
	}
	return false
}

type Transmission string

const (
	TransmissionAutomatic     Transmission = "automatic"
	TransmissionManual        Transmission = "manual"
	TransmissionSemiAutomatic Transmission = "semi_automatic"
)

var Transmissions = []Transmission{TransmissionAutomatic, TransmissionManual, TransmissionSemiAutomatic}

func (t Transmission) Valid() bool {
	for _, v := range Transmissions {
		if t == v {
			return true
		}
	}
	return false
}

// Image is a reference to an asset held by the content store.
type Image struct {
	AssetRef string `json:"assetRef"`
	Alt      string `json:"alt,omitempty"`
}

// Listing is a vehicle offered in the catalog. Optional numeric facets are
// pointers; optional enum facets use the empty string for "absent".
type Listing struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`

	Price           float64       `json:"price"`
	Status          ListingStatus `json:"status"`
	DeliveryRegions []string      `json:"deliveryRegions,omitempty"`
	OriginCountry   string        `json:"originCountry,omitempty"`

	Mileage            *float64     `json:"mileage,omitempty"`
	MileageUnit        MileageUnit  `json:"mileageUnit,omitempty"`
	EngineDisplacement *float64     `json:"engineDisplacement,omitempty"`
	EngineLayout       string       `json:"engineLayout,omitempty"`
	FuelType           FuelType     `json:"fuelType,omitempty"`
	DriveType          DriveType    `json:"driveType,omitempty"`
	Transmission       Transmission `json:"transmission,omitempty"`
	WindowsTinted      bool         `json:"windowsTinted,omitempty"`

	Features     []string `json:"features,omitempty"`
	DamageTags   []string `json:"damageTags,omitempty"`
	PrimaryUse   string   `json:"primaryUse,omitempty"`
	SecondaryUse string   `json:"secondaryUse,omitempty"`

	MainImage *Image  `json:"mainImage,omitempty"`
	Gallery   []Image `json:"gallery,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Listing) IsSold() bool { return l.Status == StatusSold }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_.][a-z0-9]+)*$`)

// ValidSlug reports whether s is a URL-safe listing slug.
func ValidSlug(s string) bool {
	return len(s) > 0 && len(s) <= 96 && slugPattern.MatchString(s)
}

// Normalize clears enum facets holding values outside their closed set and
// fills the default mileage unit.
func (l *Listing) Normalize() {
	if l.FuelType != "" && !l.FuelType.Valid() {
		l.FuelType = ""
	}
	if l.DriveType != "" && !l.DriveType.Valid() {
		l.DriveType = ""
	}
	if l.Transmission != "" && !l.Transmission.Valid() {
		l.Transmission = ""
	}
	if l.Mileage != nil && l.MileageUnit == "" {
		l.MileageUnit = MileageMiles
	}
}

// Validate checks the record invariants. now bounds the model year.
func (l *Listing) Validate(now time.Time) error {
	if !ValidSlug(l.Slug) {
		return fmt.Errorf("%w: slug %q is not URL-safe", ErrInvalidListing, l.Slug)
	}
	if l.Price < 0 {
		return fmt.Errorf("%w: negative price %v", ErrInvalidListing, l.Price)
	}
	if l.Mileage != nil && *l.Mileage < 0 {
		return fmt.Errorf("%w: negative mileage %v", ErrInvalidListing, *l.Mileage)
	}
	if l.MileageUnit != "" && l.MileageUnit != MileageKilometres && l.MileageUnit != MileageMiles {
		return fmt.Errorf("%w: unknown mileage unit %q", ErrInvalidListing, l.MileageUnit)
	}
	if l.Year < MinModelYear || l.Year > now.Year()+1 {
		return fmt.Errorf("%w: year %d outside [%d, %d]", ErrInvalidListing, l.Year, MinModelYear, now.Year()+1)
	}
	if l.Status != StatusInStock && l.Status != StatusSold {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidListing, l.Status)
	}
	if l.FuelType != "" && !l.FuelType.Valid() {
		return fmt.Errorf("%w: unknown fuel type %q", ErrInvalidListing, l.FuelType)
	}
	if l.DriveType != "" && !l.DriveType.Valid() {
		return fmt.Errorf("%w: unknown drive type %q", ErrInvalidListing, l.DriveType)
	}
	if l.Transmission != "" && !l.Transmission.Valid() {
		return fmt.Errorf("%w: unknown transmission %q", ErrInvalidListing, l.Transmission)
	}
	return nil
}
