package web

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

func filterOf(t *testing.T, raw string) domain.FilterState {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return domain.ParseFilterState(q)
}

func hrefs(opts []optionView) map[string]string {
	out := make(map[string]string, len(opts))
	for _, o := range opts {
		out[o.Value] = o.Href
	}
	return out
}

func TestListingsHref(t *testing.T) {
	assert.Equal(t, "/listings", listingsHref(domain.NewFilterState()))
	assert.Equal(t, "/listings?makes=BMW&sort=price_asc", listingsHref(filterOf(t, "sort=price_asc&make=BMW")))
}

func TestStringOptions_ToggleLinks(t *testing.T) {
	f := filterOf(t, "makes=BMW&models=X5&page=3")
	opts := stringOptions(domain.NewSet("Audi", "BMW"), f.Makes, f.ToggleMake)

	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)

	links := hrefs(opts)
	assert.Equal(t, "/listings?makes=Audi%2CBMW&models=X5", links["Audi"])
	assert.Equal(t, "/listings", links["BMW"], "removing the last make drops models and page")
}

func TestStringOptions_KeepsSelectedValuesMissingFromOptions(t *testing.T) {
	f := filterOf(t, "makes=Lada")
	opts := stringOptions(domain.NewSet("Audi"), f.Makes, f.ToggleMake)
	require.Len(t, opts, 2)
	assert.Equal(t, "Lada", opts[1].Value)
	assert.True(t, opts[1].Selected)
}

func TestEnumOptions_Labels(t *testing.T) {
	f := filterOf(t, "fuelTypes=diesel")
	opts := enumOptions(domain.NewSet(domain.FuelPetrol, domain.FuelDiesel), f.FuelTypes, fuelLabels, f.ToggleFuelType)
	require.Len(t, opts, 2)
	assert.Equal(t, "Naftë", opts[0].Label)
	assert.True(t, opts[0].Selected)
	assert.Equal(t, "/listings", opts[0].Href)
	assert.Equal(t, "/listings?fuelTypes=diesel%2Cpetrol", opts[1].Href)
}

func TestNewPaginationView(t *testing.T) {
	f := filterOf(t, "makes=BMW&page=5&pageSize=12")
	v := newPaginationView(f, domain.NewPagination(5, 12, 120))

	assert.True(t, v.Show)
	assert.Equal(t, int64(49), v.FirstItem)
	assert.Equal(t, int64(60), v.LastItem)
	assert.Equal(t, "/listings?makes=BMW&page=4&pageSize=12", v.PrevHref)
	assert.Equal(t, "/listings?makes=BMW&page=6&pageSize=12", v.NextHref)

	var numbers []int
	for _, l := range v.Links {
		numbers = append(numbers, l.Number)
		if l.Number == 5 {
			assert.True(t, l.Current)
		}
	}
	assert.Equal(t, []int{1, 0, 4, 5, 6, 0, 10}, numbers)

	sizes := hrefs(v.PageSizes)
	assert.Equal(t, "/listings?makes=BMW", sizes["24"], "changing page size returns to page 1")
	assert.Equal(t, "/listings?makes=BMW&pageSize=48", sizes["48"])
}

func TestNewPaginationView_SinglePage(t *testing.T) {
	v := newPaginationView(domain.NewFilterState(), domain.NewPagination(1, 24, 7))
	assert.False(t, v.Show)
	assert.Empty(t, v.PrevHref)
	assert.Empty(t, v.NextHref)
}

func TestHiddenFields(t *testing.T) {
	f := filterOf(t, "keyword=golf&makes=BMW&minPrice=1000&page=2&sort=year_desc")
	assert.Equal(t, []hiddenField{
		{Name: "makes", Value: "BMW"},
		{Name: "sort", Value: "year_desc"},
	}, hiddenFields(f.Values()))
}
