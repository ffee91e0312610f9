package query

import (
	"strings"
	"unicode"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

// KeywordFields are searched by the free-text keyword.
var KeywordFields = []Field{FieldTitle, FieldMake, FieldModel}

// Base restricts a read to published listings that are not sold.
func Base() []Clause {
	return []Clause{
		Eq{Field: FieldDocType, Value: domain.DocumentType},
		NotEq{Field: FieldStatus, Value: string(domain.StatusSold)},
	}
}

// Where builds the predicate for f: the base predicate plus one clause per
// active facet. Empty facets contribute nothing.
func Where(f domain.FilterState) []Clause {
	where := Base()

	if term := Compact(f.Keyword); term != "" {
		where = append(where, Contains{Fields: KeywordFields, Term: term})
	}
	if f.Makes.Len() > 0 {
		where = append(where, AnyOf{Field: FieldMake, Values: f.Makes})
		if f.Models.Len() > 0 {
			where = append(where, AnyOf{Field: FieldModel, Values: f.Models})
		}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		where = append(where, Range{Field: FieldPrice, Min: f.MinPrice, Max: f.MaxPrice})
	}
	if f.MinMileage != nil || f.MaxMileage != nil {
		where = append(where, Range{Field: FieldMileage, Min: f.MinMileage, Max: f.MaxMileage})
	}
	if f.FuelTypes.Len() > 0 {
		where = append(where, AnyOf{Field: FieldFuelType, Values: toStrings(f.FuelTypes)})
	}
	if f.DriveTypes.Len() > 0 {
		where = append(where, AnyOf{Field: FieldDriveType, Values: toStrings(f.DriveTypes)})
	}
	if f.Transmissions.Len() > 0 {
		where = append(where, AnyOf{Field: FieldTransmission, Values: toStrings(f.Transmissions)})
	}
	return where
}

func toStrings[T ~string](s domain.Set[T]) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

// OrderFor maps a sort key to explicit sort fields. Every ordering ends with
// created_at desc and _id asc so that page windows are stable.
func OrderFor(key domain.SortKey) []Order {
	var primary []Order
	switch key {
	case domain.SortPriceAsc:
		primary = []Order{{Field: FieldPrice}}
	case domain.SortPriceDesc:
		primary = []Order{{Field: FieldPrice, Desc: true}}
	case domain.SortYearDesc:
		primary = []Order{{Field: FieldYear, Desc: true}}
	case domain.SortYearAsc:
		primary = []Order{{Field: FieldYear}}
	}
	return append(primary, Order{Field: FieldCreatedAt, Desc: true}, Order{Field: FieldID})
}

// Window converts a 1-based page into an offset/limit pair.
func Window(page, pageSize int) (offset, limit int64) {
	return domain.PageOffset(page, pageSize), int64(pageSize)
}

// List is the paginated read for f.
func List(f domain.FilterState) Query {
	offset, limit := Window(f.Page, f.PageSize)
	return Query{
		Where:  Where(f),
		Sort:   OrderFor(f.Sort),
		Offset: offset,
		Limit:  limit,
	}
}

// Count is the count read matching List(f): same predicate, no window.
func Count(f domain.FilterState) Query {
	return Query{Where: Where(f)}
}

// Latest reads the newest unsold listings.
func Latest(limit int) Query {
	return Query{
		Where: Base(),
		Sort:  OrderFor(domain.SortLatest),
		Limit: int64(limit),
	}
}

// ModelOptions is the predicate for the distinct models of one make.
func ModelOptions(makeName string) []Clause {
	return append(Base(), Eq{Field: FieldMake, Value: makeName})
}

// Compact lower-cases s and strips whitespace and hyphens, the form in
// which keywords are compared.
func Compact(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
