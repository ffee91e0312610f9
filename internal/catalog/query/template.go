package query

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Params are the values bound to a template's named placeholders.
type Params map[string]any

// Template renders q as text with named placeholders ($make0, $price_min,
// ...) and returns the bound values separately. Only field names and
// operators appear in the text.
func (q Query) Template() (string, Params) {
	r := renderer{params: Params{}}
	text := r.where(q.Where)
	if len(q.Sort) > 0 {
		orders := make([]string, len(q.Sort))
		for i, o := range q.Sort {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			orders[i] = string(o.Field) + " " + dir
		}
		text += " | order(" + strings.Join(orders, ", ") + ")"
	}
	if q.Limit > 0 {
		r.params["offset"] = q.Offset
		r.params["end"] = q.Offset + q.Limit
		text += " [$offset...$end]"
	}
	return text, r.params
}

// WhereTemplate renders a bare predicate the way Template does.
func WhereTemplate(where []Clause) (string, Params) {
	r := renderer{params: Params{}}
	return r.where(where), r.params
}

// Fingerprint is a stable digest of a predicate and its bound values,
// suitable as a cache key.
func Fingerprint(where []Clause) string {
	text, params := WhereTemplate(where)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(text))
	for _, k := range keys {
		fmt.Fprintf(h, "\x00%s=%v", k, params[k])
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}

type renderer struct {
	params Params
}

// bind stores v under a placeholder derived from base and returns it.
func (r *renderer) bind(base string, v any) string {
	name := base
	for i := 1; ; i++ {
		if _, taken := r.params[name]; !taken {
			break
		}
		name = base + "_" + strconv.Itoa(i)
	}
	r.params[name] = v
	return "$" + name
}

func (r *renderer) where(where []Clause) string {
	if len(where) == 0 {
		return "*"
	}
	parts := make([]string, len(where))
	for i, c := range where {
		parts[i] = r.clause(c)
	}
	return strings.Join(parts, " && ")
}

func (r *renderer) clause(c Clause) string {
	switch c := c.(type) {
	case Eq:
		return fmt.Sprintf("%s == %s", c.Field, r.bind(string(c.Field), c.Value))
	case NotEq:
		return fmt.Sprintf("%s != %s", c.Field, r.bind(string(c.Field), c.Value))
	case AnyOf:
		alts := make([]string, len(c.Values))
		for i, v := range c.Values {
			alts[i] = fmt.Sprintf("%s == %s", c.Field, r.bind(string(c.Field)+strconv.Itoa(i), v))
		}
		return "(" + strings.Join(alts, " || ") + ")"
	case Range:
		var sides []string
		if c.Min != nil {
			sides = append(sides, fmt.Sprintf("%s >= %s", c.Field, r.bind(string(c.Field)+"_min", *c.Min)))
		}
		if c.Max != nil {
			sides = append(sides, fmt.Sprintf("%s <= %s", c.Field, r.bind(string(c.Field)+"_max", *c.Max)))
		}
		if len(sides) == 0 {
			return "true"
		}
		return strings.Join(sides, " && ")
	case Contains:
		term := r.bind("keyword", c.Term)
		alts := make([]string, len(c.Fields))
		for i, f := range c.Fields {
			alts[i] = fmt.Sprintf("%s match %s", f, term)
		}
		return "(" + strings.Join(alts, " || ") + ")"
	default:
		panic(fmt.Sprintf("query: unknown clause %T", c))
	}
}
