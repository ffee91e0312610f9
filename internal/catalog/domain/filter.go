package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Query-string parameter names of the listing catalog.
const (
	ParamKeyword       = "keyword"
	ParamMakes         = "makes"
	ParamMake          = "make" // legacy single-value form of makes
	ParamModels        = "models"
	ParamMinPrice      = "minPrice"
	ParamMaxPrice      = "maxPrice"
	ParamMinMileage    = "minMileage"
	ParamMaxMileage    = "maxMileage"
	ParamFuelTypes     = "fuelTypes"
	ParamDriveTypes    = "driveTypes"
	ParamTransmissions = "transmissions"
	ParamSort          = "sort"
	ParamPage          = "page"
	ParamPageSize      = "pageSize"
)

type SortKey string

const (
	SortLatest    SortKey = "latest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortYearDesc  SortKey = "year_desc"
	SortYearAsc   SortKey = "year_asc"
)

var SortKeys = []SortKey{SortLatest, SortPriceAsc, SortPriceDesc, SortYearDesc, SortYearAsc}

// ParseSortKey falls back to SortLatest for anything it does not know.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k
		}
	}
	return SortLatest
}

const (
	DefaultPageSize  = 24
	MaxKeywordLength = 100
)

// PageSizes is the fixed set of page sizes a visitor can choose from.
var PageSizes = []int{12, 24, 48, 96}

// NormalizePageSize snaps n to the nearest allowed page size; ties go to the
// larger size. Non-positive input yields DefaultPageSize.
func NormalizePageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	best := PageSizes[0]
	for _, size := range PageSizes[1:] {
		if abs(n-size) <= abs(n-best) {
			best = size
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FilterState is the normalized filter, sort and pagination state of one
// catalog request. The zero value is not normalized; use NewFilterState or
// ParseFilterState.
type FilterState struct {
	Keyword       string
	Makes         Set[string]
	Models        Set[string]
	MinPrice      *float64
	MaxPrice      *float64
	MinMileage    *float64
	MaxMileage    *float64
	FuelTypes     Set[FuelType]
	DriveTypes    Set[DriveType]
	Transmissions Set[Transmission]
	Sort          SortKey
	Page          int
	PageSize      int
}

// NewFilterState returns the empty state: no filters, latest first, page 1.
func NewFilterState() FilterState {
	return FilterState{Sort: SortLatest, Page: 1, PageSize: DefaultPageSize}
}

// ParseFilterState maps query parameters to a FilterState. It never fails:
// malformed values are dropped or replaced by their defaults.
func ParseFilterState(q url.Values) FilterState {
	f := NewFilterState()

	f.Keyword = normalizeKeyword(q.Get(ParamKeyword))

	if _, ok := q[ParamMakes]; ok {
		f.Makes = NewSet(splitList(q[ParamMakes])...)
	} else {
		f.Makes = NewSet(splitList(q[ParamMake])...)
	}
	if f.Makes.Len() > 0 {
		f.Models = NewSet(splitList(q[ParamModels])...)
	}

	f.MinPrice = parseNumber(q.Get(ParamMinPrice))
	f.MaxPrice = parseNumber(q.Get(ParamMaxPrice))
	f.MinMileage = parseNumber(q.Get(ParamMinMileage))
	f.MaxMileage = parseNumber(q.Get(ParamMaxMileage))

	f.FuelTypes = parseEnumSet(q[ParamFuelTypes], FuelType.Valid)
	f.DriveTypes = parseEnumSet(q[ParamDriveTypes], DriveType.Valid)
	f.Transmissions = parseEnumSet(q[ParamTransmissions], Transmission.Valid)

	f.Sort = ParseSortKey(q.Get(ParamSort))

	if p, err := strconv.Atoi(strings.TrimSpace(q.Get(ParamPage))); err == nil && p > 1 {
		f.Page = p
	}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get(ParamPageSize))); err == nil {
		f.PageSize = NormalizePageSize(n)
	}
	return f
}

func normalizeKeyword(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > MaxKeywordLength {
		s = string([]rune(s)[:MaxKeywordLength])
	}
	return s
}

// splitList flattens repeated and comma-separated values, dropping blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Selectable reports whether v survives the comma-separated list form of
// the query string unchanged. Facet values that do not can't be selected.
func Selectable(v string) bool {
	return v != "" && v == strings.TrimSpace(v) && !strings.Contains(v, ",")
}

func parseEnumSet[T ~string](values []string, valid func(T) bool) Set[T] {
	var out []T
	for _, v := range splitList(values) {
		if e := T(strings.ToLower(v)); valid(e) {
			out = append(out, e)
		}
	}
	return NewSet(out...)
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HasFilters reports whether any field other than sort and pagination is set.
func (f FilterState) HasFilters() bool {
	return f.Keyword != "" ||
		f.Makes.Len() > 0 ||
		f.Models.Len() > 0 ||
		f.MinPrice != nil || f.MaxPrice != nil ||
		f.MinMileage != nil || f.MaxMileage != nil ||
		f.FuelTypes.Len() > 0 ||
		f.DriveTypes.Len() > 0 ||
		f.Transmissions.Len() > 0
}

// InvertedRanges names the numeric ranges whose minimum exceeds their maximum.
func (f FilterState) InvertedRanges() []string {
	var out []string
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		out = append(out, "price")
	}
	if f.MinMileage != nil && f.MaxMileage != nil && *f.MinMileage > *f.MaxMileage {
		out = append(out, "mileage")
	}
	return out
}

// Offset is the number of records that precede the current page.
func (f FilterState) Offset() int64 {
	return PageOffset(f.Page, f.PageSize)
}

// Values is the canonical query-string form of f. Empty and default fields
// are omitted and sets are written in sorted order.
func (f FilterState) Values() url.Values {
	v := url.Values{}
	if f.Keyword != "" {
		v.Set(ParamKeyword, f.Keyword)
	}
	if f.Makes.Len() > 0 {
		v.Set(ParamMakes, Join(f.Makes))
		if f.Models.Len() > 0 {
			v.Set(ParamModels, Join(f.Models))
		}
	}
	setNumber(v, ParamMinPrice, f.MinPrice)
	setNumber(v, ParamMaxPrice, f.MaxPrice)
	setNumber(v, ParamMinMileage, f.MinMileage)
	setNumber(v, ParamMaxMileage, f.MaxMileage)
	if f.FuelTypes.Len() > 0 {
		v.Set(ParamFuelTypes, Join(f.FuelTypes))
	}
	if f.DriveTypes.Len() > 0 {
		v.Set(ParamDriveTypes, Join(f.DriveTypes))
	}
	if f.Transmissions.Len() > 0 {
		v.Set(ParamTransmissions, Join(f.Transmissions))
	}
	if f.Sort != "" && f.Sort != SortLatest {
		v.Set(ParamSort, string(f.Sort))
	}
	if f.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(f.Page))
	}
	if f.PageSize != 0 && f.PageSize != DefaultPageSize {
		v.Set(ParamPageSize, strconv.Itoa(f.PageSize))
	}
	return v
}

func setNumber(v url.Values, key string, n *float64) {
	if n != nil {
		v.Set(key, formatNumber(*n))
	}
}

// Encode returns the canonical query string (keys sorted, no leading '?').
func (f FilterState) Encode() string {
	return f.Values().Encode()
}

// SameFilters reports whether f and other select the same records,
// ignoring sort and pagination.
func (f FilterState) SameFilters(other FilterState) bool {
	return f.Keyword == other.Keyword &&
		f.Makes.Equal(other.Makes) &&
		f.Models.Equal(other.Models) &&
		sameNumber(f.MinPrice, other.MinPrice) &&
		sameNumber(f.MaxPrice, other.MaxPrice) &&
		sameNumber(f.MinMileage, other.MinMileage) &&
		sameNumber(f.MaxMileage, other.MaxMileage) &&
		f.FuelTypes.Equal(other.FuelTypes) &&
		f.DriveTypes.Equal(other.DriveTypes) &&
		f.Transmissions.Equal(other.Transmissions)
}

func sameNumber(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Next returns to, with the page reset to 1 when to selects different
// records than f. Sort and page size changes alone keep the page.
func (f FilterState) Next(to FilterState) FilterState {
	if !f.SameFilters(to) {
		to.Page = 1
	}
	if to.Makes.Len() == 0 {
		to.Models = nil
	}
	return to
}

// QueryFor is the canonical query string for navigating from f to to.
func (f FilterState) QueryFor(to FilterState) string {
	return f.Next(to).Encode()
}

func (f FilterState) ToggleMake(name string) FilterState {
	if !Selectable(name) {
		return f
	}
	next := f
	next.Makes = f.Makes.Toggle(name)
	return f.Next(next)
}

func (f FilterState) ToggleModel(model string) FilterState {
	if !Selectable(model) {
		return f
	}
	next := f
	next.Models = f.Models.Toggle(model)
	return f.Next(next)
}

func (f FilterState) ToggleFuelType(v FuelType) FilterState {
	next := f
	next.FuelTypes = f.FuelTypes.Toggle(v)
	return f.Next(next)
}

func (f FilterState) ToggleDriveType(v DriveType) FilterState {
	next := f
	next.DriveTypes = f.DriveTypes.Toggle(v)
	return f.Next(next)
}

func (f FilterState) ToggleTransmission(v Transmission) FilterState {
	next := f
	next.Transmissions = f.Transmissions.Toggle(v)
	return f.Next(next)
}

func (f FilterState) WithSort(s SortKey) FilterState {
	next := f
	next.Sort = s
	return next
}

func (f FilterState) WithPage(p int) FilterState {
	next := f
	if p < 1 {
		p = 1
	}
	next.Page = p
	return next
}

// WithPageSize changes the page size and returns to the first page.
func (f FilterState) WithPageSize(n int) FilterState {
	next := f
	next.PageSize = NormalizePageSize(n)
	next.Page = 1
	return next
}

// Cleared drops every filter but keeps sort and page size.
func (f FilterState) Cleared() FilterState {
	next := NewFilterState()
	next.Sort = f.Sort
	next.PageSize = f.PageSize
	return next
}

// RetainModels drops selected models that are not in available and reports
// whether anything was removed. It is used after the make selection changed
// to clear models that belong to makes no longer selected.
func (f FilterState) RetainModels(available Set[string]) (FilterState, bool) {
	kept := f.Models.Intersect(available)
	if kept.Len() == f.Models.Len() {
		return f, false
	}
	next := f
	next.Models = kept
	return f.Next(next), true
}
