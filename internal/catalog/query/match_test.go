package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func listing(id, mk, model string, price float64, year int) domain.Listing {
	return domain.Listing{
		ID:        id,
		Slug:      id,
		Title:     mk + " " + model,
		Make:      mk,
		Model:     model,
		Year:      year,
		Price:     price,
		Status:    domain.StatusInStock,
		CreatedAt: epoch,
	}
}

func TestMatch_Keyword(t *testing.T) {
	g := listing("g", "Mercedes-Benz", "G 550", 76000, 2019)
	a := listing("a", "Audi", "A4", 21000, 2018)
	where := Where(filter(t, "keyword=g550"))

	assert.True(t, Match(&g, where))
	assert.False(t, Match(&a, where))

	assert.True(t, Match(&g, Where(filter(t, "keyword=MERCEDES"))))
	assert.True(t, Match(&g, Where(filter(t, "keyword=benz%20g"))))
}

func TestMatch_SoldIsExcluded(t *testing.T) {
	sold := listing("s", "BMW", "X5", 30000, 2020)
	sold.Status = domain.StatusSold
	assert.False(t, Match(&sold, Base()))

	unknown := listing("u", "BMW", "X5", 30000, 2020)
	unknown.Status = ""
	assert.True(t, Match(&unknown, Base()))
}

func TestMatch_Ranges(t *testing.T) {
	l := listing("x", "BMW", "X5", 30000, 2020)
	assert.True(t, Match(&l, Where(filter(t, "minPrice=30000&maxPrice=30000"))))
	assert.False(t, Match(&l, Where(filter(t, "minPrice=30001"))))
	assert.False(t, Match(&l, Where(filter(t, "minPrice=40000&maxPrice=20000"))), "inverted range matches nothing")

	// no mileage recorded: any mileage bound excludes it
	assert.False(t, Match(&l, Where(filter(t, "maxMileage=100000"))))
	m := 50000.0
	l.Mileage = &m
	assert.True(t, Match(&l, Where(filter(t, "maxMileage=100000"))))
}

func TestMatch_AnyOfIsCaseSensitive(t *testing.T) {
	l := listing("x", "BMW", "X5", 30000, 2020)
	assert.True(t, Match(&l, Where(filter(t, "makes=Audi,BMW"))))
	assert.False(t, Match(&l, Where(filter(t, "makes=bmw"))))
	assert.False(t, Match(&l, Where(filter(t, "makes=BMW&models=X3"))))
}

func TestApply_Scenario(t *testing.T) {
	var store []domain.Listing
	for i := 0; i < 15; i++ {
		l := listing(fmt.Sprintf("bmw-%02d", i), "BMW", "3 Series", 20000+float64((i*7)%15)*1000, 2015+i%5)
		l.CreatedAt = epoch.Add(time.Duration(i) * time.Hour)
		store = append(store, l)
	}
	store = append(store,
		listing("bmw-cheap", "BMW", "1 Series", 9000, 2012),
		listing("audi", "Audi", "A4", 25000, 2018),
	)
	sold := listing("bmw-sold", "BMW", "X5", 25000, 2020)
	sold.Status = domain.StatusSold
	store = append(store, sold)

	f := filter(t, "makes=BMW&minPrice=20000&maxPrice=40000&sort=price_asc&page=1&pageSize=12")

	page1 := Apply(store, List(f))
	require.Len(t, page1, 12)
	for i := 1; i < len(page1); i++ {
		assert.LessOrEqual(t, page1[i-1].Price, page1[i].Price)
	}
	assert.Len(t, Apply(store, Count(f)), 15)
	assert.Equal(t, 2, domain.TotalPages(15, f.PageSize))

	page2 := Apply(store, List(f.WithPage(2)))
	assert.Len(t, page2, 3)
	assert.GreaterOrEqual(t, page2[0].Price, page1[11].Price)

	assert.Empty(t, Apply(store, List(f.WithPage(3))))
}

func TestSortListings_Tiebreaks(t *testing.T) {
	a := listing("a", "BMW", "X5", 30000, 2020)
	b := listing("b", "BMW", "X5", 30000, 2020)
	c := listing("c", "BMW", "X5", 30000, 2020)
	c.CreatedAt = epoch.Add(time.Hour)

	ls := []domain.Listing{b, a, c}
	SortListings(ls, OrderFor(domain.SortPriceAsc))
	assert.Equal(t, []string{"c", "a", "b"}, []string{ls[0].ID, ls[1].ID, ls[2].ID})

	SortListings(ls, OrderFor(domain.SortLatest))
	assert.Equal(t, "c", ls[0].ID)
}

func TestApply_WindowPastTheEnd(t *testing.T) {
	store := []domain.Listing{
		listing("a", "BMW", "X3", 30000, 2018),
		listing("b", "BMW", "X5", 40000, 2019),
	}

	past := Apply(store, List(filter(t, "page=100000000000000000&pageSize=96")))
	assert.NotNil(t, past)
	assert.Empty(t, past)

	assert.Empty(t, Apply(store, Query{Where: Base(), Offset: -1}))
}
