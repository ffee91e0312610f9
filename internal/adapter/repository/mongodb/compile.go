package mongodb

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
)

// separatorClass matches the characters query.Compact strips: unicode.IsSpace
// runes and hyphens.
const separatorClass = `[\s\p{Z}\x{0B}\x{85}-]*`

// compileFilter translates a clause conjunction into a MongoDB filter. Every
// user-supplied value travels as a BSON value; regular expressions are built
// from escaped characters only.
func compileFilter(where []query.Clause) (bson.D, error) {
	filter := bson.D{}
	var and bson.A
	for _, c := range where {
		switch c := c.(type) {
		case query.Eq:
			and = append(and, bson.D{{Key: string(c.Field), Value: bson.D{{Key: "$eq", Value: c.Value}}}})
		case query.NotEq:
			and = append(and, bson.D{{Key: string(c.Field), Value: bson.D{{Key: "$ne", Value: c.Value}}}})
		case query.AnyOf:
			values := make(bson.A, len(c.Values))
			for i, v := range c.Values {
				values[i] = v
			}
			and = append(and, bson.D{{Key: string(c.Field), Value: bson.D{{Key: "$in", Value: values}}}})
		case query.Range:
			bounds := bson.D{}
			if c.Min != nil {
				bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Min})
			}
			if c.Max != nil {
				bounds = append(bounds, bson.E{Key: "$lte", Value: *c.Max})
			}
			if len(bounds) > 0 {
				and = append(and, bson.D{{Key: string(c.Field), Value: bounds}})
			}
		case query.Contains:
			if c.Term == "" {
				continue
			}
			pattern := keywordPattern(c.Term)
			or := make(bson.A, len(c.Fields))
			for i, f := range c.Fields {
				or[i] = bson.D{{Key: string(f), Value: primitive.Regex{Pattern: pattern, Options: "i"}}}
			}
			and = append(and, bson.D{{Key: "$or", Value: or}})
		default:
			return nil, fmt.Errorf("mongodb: unsupported clause %T", c)
		}
	}
	if len(and) > 0 {
		filter = append(filter, bson.E{Key: "$and", Value: and})
	}
	return filter, nil
}

// keywordPattern matches term with any run of whitespace or hyphens between
// its characters.
func keywordPattern(term string) string {
	parts := make([]string, 0, len(term))
	for _, r := range term {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return strings.Join(parts, separatorClass)
}

func compileSort(orders []query.Order) bson.D {
	sort := make(bson.D, 0, len(orders))
	for _, o := range orders {
		dir := 1
		if o.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: string(o.Field), Value: dir})
	}
	return sort
}
