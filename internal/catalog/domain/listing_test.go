package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validListing() Listing {
	mileage := 141526.0
	return Listing{
		ID:           "car-1",
		Slug:         "mercedes-benz-g-550-2019",
		Title:        "Mercedes-Benz G 550",
		Make:         "Mercedes-Benz",
		Model:        "G 550",
		Year:         2019,
		Price:        76000,
		Status:       StatusInStock,
		Mileage:      &mileage,
		MileageUnit:  MileageMiles,
		FuelType:     FuelPetrol,
		DriveType:    Drive4Matic,
		Transmission: TransmissionAutomatic,
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("bmw-x5-2020"))
	assert.True(t, ValidSlug("audi_a4.2018"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("BMW-X5"))
	assert.False(t, ValidSlug("bmw--x5"))
	assert.False(t, ValidSlug("../etc/passwd"))
	assert.False(t, ValidSlug("x5\" || true"))
}

func TestListing_Validate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	l := validListing()
	assert.NoError(t, l.Validate(now))

	tests := map[string]func(l *Listing){
		"negative price":   func(l *Listing) { l.Price = -1 },
		"negative mileage": func(l *Listing) { m := -5.0; l.Mileage = &m },
		"too old":          func(l *Listing) { l.Year = 1884 },
		"too new":          func(l *Listing) { l.Year = 2028 },
		"unknown status":   func(l *Listing) { l.Status = "reserved" },
		"unknown fuel":     func(l *Listing) { l.FuelType = "coal" },
		"unknown unit":     func(l *Listing) { l.MileageUnit = "furlongs" },
		"bad slug":         func(l *Listing) { l.Slug = "Not A Slug" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			l := validListing()
			mutate(&l)
			assert.ErrorIs(t, l.Validate(now), ErrInvalidListing)
		})
	}

	l.Year = 2027
	assert.NoError(t, l.Validate(now), "next model year is allowed")
}

func TestListing_Normalize(t *testing.T) {
	l := validListing()
	l.FuelType = "coal"
	l.DriveType = "6x6"
	l.MileageUnit = ""
	l.Normalize()

	assert.Empty(t, l.FuelType)
	assert.Empty(t, l.DriveType)
	assert.Equal(t, TransmissionAutomatic, l.Transmission)
	assert.Equal(t, MileageMiles, l.MileageUnit)
	assert.False(t, l.IsSold())
}
