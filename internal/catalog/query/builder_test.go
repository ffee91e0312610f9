package query

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

func filter(t *testing.T, raw string) domain.FilterState {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return domain.ParseFilterState(q)
}

func TestWhere_EmptyFilterIsBase(t *testing.T) {
	assert.Equal(t, Base(), Where(filter(t, "sort=price_asc&page=4")))
}

func TestWhere_Facets(t *testing.T) {
	minPrice, maxPrice := 20000.0, 40000.0
	where := Where(filter(t,
		"keyword=G-550&makes=BMW,Audi&models=X5&minPrice=20000&maxPrice=40000&maxMileage=90000&fuelTypes=diesel&driveTypes=xdrive&transmissions=automatic,manual"))

	maxMileage := 90000.0
	want := append(Base(),
		Contains{Fields: KeywordFields, Term: "g550"},
		AnyOf{Field: FieldMake, Values: []string{"Audi", "BMW"}},
		AnyOf{Field: FieldModel, Values: []string{"X5"}},
		Range{Field: FieldPrice, Min: &minPrice, Max: &maxPrice},
		Range{Field: FieldMileage, Max: &maxMileage},
		AnyOf{Field: FieldFuelType, Values: []string{"diesel"}},
		AnyOf{Field: FieldDriveType, Values: []string{"xdrive"}},
		AnyOf{Field: FieldTransmission, Values: []string{"automatic", "manual"}},
	)
	assert.Equal(t, want, where)
}

func TestWhere_SeparatorOnlyKeywordIsIgnored(t *testing.T) {
	assert.Equal(t, Base(), Where(filter(t, "keyword=---")))
}

func TestOrderFor(t *testing.T) {
	tail := []Order{{Field: FieldCreatedAt, Desc: true}, {Field: FieldID}}

	assert.Equal(t, tail, OrderFor(domain.SortLatest))
	assert.Equal(t, tail, OrderFor("nonsense"))
	assert.Equal(t, append([]Order{{Field: FieldPrice}}, tail...), OrderFor(domain.SortPriceAsc))
	assert.Equal(t, append([]Order{{Field: FieldPrice, Desc: true}}, tail...), OrderFor(domain.SortPriceDesc))
	assert.Equal(t, append([]Order{{Field: FieldYear, Desc: true}}, tail...), OrderFor(domain.SortYearDesc))
	assert.Equal(t, append([]Order{{Field: FieldYear}}, tail...), OrderFor(domain.SortYearAsc))
}

func TestWindow(t *testing.T) {
	off, lim := Window(1, 24)
	assert.Equal(t, int64(0), off)
	assert.Equal(t, int64(24), lim)

	off, lim = Window(3, 12)
	assert.Equal(t, int64(24), off)
	assert.Equal(t, int64(12), lim)

	off, _ = Window(0, 12)
	assert.Equal(t, int64(0), off)

	off, lim = Window(100000000000000000, 96)
	assert.Equal(t, int64(math.MaxInt64), off)
	assert.Equal(t, int64(96), lim)
}

func TestListAndCountShareThePredicate(t *testing.T) {
	f := filter(t, "makes=BMW&minPrice=20000&sort=price_asc&page=2&pageSize=12")
	list, count := List(f), Count(f)

	assert.Equal(t, list.Where, count.Where)
	assert.Equal(t, int64(12), list.Offset)
	assert.Equal(t, int64(12), list.Limit)
	assert.Zero(t, count.Offset)
	assert.Zero(t, count.Limit)
	assert.Empty(t, count.Sort)
}

func TestLatest(t *testing.T) {
	q := Latest(6)
	assert.Equal(t, Base(), q.Where)
	assert.Equal(t, int64(6), q.Limit)
	assert.Equal(t, Order{Field: FieldCreatedAt, Desc: true}, q.Sort[0])
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "g550", Compact("G 550"))
	assert.Equal(t, "mercedesbenz", Compact(" Mercedes-Benz\t"))
	assert.Equal(t, "çeliku", Compact("ÇELIKU"))
}
