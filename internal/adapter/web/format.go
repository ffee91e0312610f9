package web

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

const notAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// formatPrice renders whole euros with thousands separators, e.g. €76,000.
func formatPrice(v float64) string {
	return printer.Sprintf("€%d", int64(math.Round(v)))
}

func formatMileage(v *float64, unit domain.MileageUnit) string {
	if v == nil {
		return notAvailable
	}
	suffix := "mi"
	if unit == domain.MileageKilometres {
		suffix = "km"
	}
	return printer.Sprintf("%d %s", int64(math.Round(*v)), suffix)
}

// formatEngine renders displacement and layout, e.g. 4.0 V8.
func formatEngine(displacement *float64, layout string) string {
	if displacement == nil {
		if layout != "" {
			return layout
		}
		return notAvailable
	}
	if layout == "" {
		return fmt.Sprintf("%.1f L", *displacement)
	}
	return fmt.Sprintf("%.1f %s", *displacement, layout)
}

var fuelLabels = map[domain.FuelType]string{
	domain.FuelPetrol:   "Benzinë",
	domain.FuelDiesel:   "Naftë",
	domain.FuelHybrid:   "Hibrid",
	domain.FuelElectric: "Elektrik",
	domain.FuelOther:    "Tjetër",
}

var driveLabels = map[domain.DriveType]string{
	domain.DriveFWD:     "FWD",
	domain.DriveRWD:     "RWD",
	domain.DriveAWD:     "AWD",
	domain.Drive4Matic:  "4MATIC",
	domain.DriveXDrive:  "xDrive",
	domain.DriveQuattro: "quattro",
}

var transmissionLabels = map[domain.Transmission]string{
	domain.TransmissionAutomatic:     "Automatik",
	domain.TransmissionManual:        "Manual",
	domain.TransmissionSemiAutomatic: "Gjysmë-automatik",
}

var sortLabels = map[domain.SortKey]string{
	domain.SortLatest:    "Latest arrivals",
	domain.SortPriceAsc:  "Price: low to high",
	domain.SortPriceDesc: "Price: high to low",
	domain.SortYearDesc:  "Year: newest first",
	domain.SortYearAsc:   "Year: oldest first",
}

func label[K ~string](labels map[K]string, v K) string {
	if v == "" {
		return notAvailable
	}
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}
