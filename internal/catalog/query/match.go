package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

// Match evaluates where against l with the same semantics the content store
// applies.
func Match(l *domain.Listing, where []Clause) bool {
	for _, c := range where {
		if !matchClause(l, c) {
			return false
		}
	}
	return true
}

func matchClause(l *domain.Listing, c Clause) bool {
	switch c := c.(type) {
	case Eq:
		v, ok := stringField(l, c.Field)
		return ok && v == c.Value
	case NotEq:
		v, ok := stringField(l, c.Field)
		return !ok || v != c.Value
	case AnyOf:
		v, ok := stringField(l, c.Field)
		return ok && slices.Contains(c.Values, v)
	case Range:
		v, ok := numberField(l, c.Field)
		return ok && c.contains(v)
	case Contains:
		if c.Term == "" {
			return true
		}
		for _, f := range c.Fields {
			if v, ok := stringField(l, f); ok && strings.Contains(Compact(v), c.Term) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// stringField returns the value of a string attribute and whether it is set.
func stringField(l *domain.Listing, f Field) (string, bool) {
	var v string
	switch f {
	case FieldID:
		v = l.ID
	case FieldDocType:
		return domain.DocumentType, true
	case FieldSlug:
		v = l.Slug
	case FieldTitle:
		v = l.Title
	case FieldMake:
		v = l.Make
	case FieldModel:
		v = l.Model
	case FieldStatus:
		v = string(l.Status)
	case FieldFuelType:
		v = string(l.FuelType)
	case FieldDriveType:
		v = string(l.DriveType)
	case FieldTransmission:
		v = string(l.Transmission)
	default:
		return "", false
	}
	return v, v != ""
}

func numberField(l *domain.Listing, f Field) (float64, bool) {
	switch f {
	case FieldPrice:
		return l.Price, true
	case FieldYear:
		return float64(l.Year), true
	case FieldMileage:
		if l.Mileage == nil {
			return 0, false
		}
		return *l.Mileage, true
	}
	return 0, false
}

// StringValue exposes the string attribute f of l, for distinct-value scans.
func StringValue(l *domain.Listing, f Field) (string, bool) {
	return stringField(l, f)
}

// SortListings orders ls in place by orders.
func SortListings(ls []domain.Listing, orders []Order) {
	slices.SortStableFunc(ls, func(a, b domain.Listing) int {
		for _, o := range orders {
			c := compareField(&a, &b, o.Field)
			if c == 0 {
				continue
			}
			if o.Desc {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareField(a, b *domain.Listing, f Field) int {
	switch f {
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case FieldPrice, FieldYear, FieldMileage:
		av, aok := numberField(a, f)
		bv, bok := numberField(b, f)
		// absent values sort first, as in the store
		if aok != bok {
			if aok {
				return 1
			}
			return -1
		}
		return cmp.Compare(av, bv)
	default:
		av, _ := stringField(a, f)
		bv, _ := stringField(b, f)
		return strings.Compare(av, bv)
	}
}

// Apply runs q over ls: filter, sort and window. ls is not modified.
func Apply(ls []domain.Listing, q Query) []domain.Listing {
	out := make([]domain.Listing, 0, len(ls))
	for i := range ls {
		if Match(&ls[i], q.Where) {
			out = append(out, ls[i])
		}
	}
	SortListings(out, q.Sort)

	if q.Offset < 0 || q.Offset >= int64(len(out)) {
		return []domain.Listing{}
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < int64(len(out)) {
		out = out[:q.Limit]
	}
	return out
}
