// Package query turns a catalog FilterState into a store-neutral query: a
// conjunction of typed clauses, an ordering and an offset/limit window.
//
// Clause values are held as Go values and handed to the store driver as bound
// parameters. Nothing in this package splices user input into query text.
package query

import "math"

// Field names a listing attribute by its content store name.
type Field string

const (
	FieldID           Field = "_id"
	FieldDocType      Field = "doc_type"
	FieldSlug         Field = "slug"
	FieldTitle        Field = "title"
	FieldMake         Field = "make"
	FieldModel        Field = "model"
	FieldYear         Field = "year"
	FieldPrice        Field = "price"
	FieldMileage      Field = "mileage"
	FieldStatus       Field = "status"
	FieldFuelType     Field = "fuel_type"
	FieldDriveType    Field = "drive_type"
	FieldTransmission Field = "transmission"
	FieldCreatedAt    Field = "created_at"
)

// Clause is one predicate of a Query's conjunction.
type Clause interface {
	clause()
}

// Eq matches records whose Field equals Value.
type Eq struct {
	Field Field
	Value string
}

// NotEq matches records whose Field differs from Value, including records
// without the field.
type NotEq struct {
	Field Field
	Value string
}

// AnyOf matches records whose Field equals one of Values.
type AnyOf struct {
	Field  Field
	Values []string
}

// Range matches records whose numeric Field lies within [Min, Max]. A nil
// bound is open. Records without the field never match.
type Range struct {
	Field Field
	Min   *float64
	Max   *float64
}

// Contains matches records where Term occurs in any of Fields, ignoring
// case, whitespace and hyphens. Term is already compacted; see Compact.
type Contains struct {
	Fields []Field
	Term   string
}

func (Eq) clause()       {}
func (NotEq) clause()    {}
func (AnyOf) clause()    {}
func (Range) clause()    {}
func (Contains) clause() {}

// Empty reports whether the range can match nothing because Min > Max.
func (r Range) Empty() bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}

func (r Range) contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Order is one sort key.
type Order struct {
	Field Field
	Desc  bool
}

// Query is a filtered, ordered and windowed read. A zero Limit means no limit.
type Query struct {
	Where  []Clause
	Sort   []Order
	Offset int64
	Limit  int64
}
