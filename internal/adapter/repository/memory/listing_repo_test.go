package memory

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

func loadFixtures(t *testing.T) *ListingRepository {
	t.Helper()
	repo, err := LoadFile("testdata/listings.json", logger.NewNop())
	require.NoError(t, err)
	return repo
}

func TestLoadFile(t *testing.T) {
	_, err := LoadFile("testdata/missing.json", logger.NewNop())
	assert.Error(t, err)

	repo := loadFixtures(t)
	n, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestListingRepository_SoldExcluded(t *testing.T) {
	ctx := context.Background()
	repo := loadFixtures(t)

	n, err := repo.Count(ctx, query.Base())
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	all, err := repo.Find(ctx, query.Query{Where: query.Base()})
	require.NoError(t, err)
	for _, l := range all {
		assert.NotEqual(t, domain.StatusSold, l.Status, l.Slug)
	}

	makes, err := repo.Distinct(ctx, query.FieldMake, query.Base())
	require.NoError(t, err)
	assert.NotContains(t, makes, "Porsche")

	sold, err := repo.FindBySlug(ctx, "porsche-cayenne-2018")
	require.NoError(t, err)
	assert.True(t, sold.IsSold())
}

func TestListingRepository_Distinct(t *testing.T) {
	repo := loadFixtures(t)
	models, err := repo.Distinct(context.Background(), query.FieldModel, query.ModelOptions("BMW"))
	require.NoError(t, err)
	sort.Strings(models)
	assert.Equal(t, []string{"3 Series", "X3", "X5"}, models)
}

func TestListingRepository_FindWindow(t *testing.T) {
	repo := loadFixtures(t)
	q := query.Latest(3)
	ls, err := repo.Find(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, ls, 3)
	assert.Equal(t, "volkswagen-golf-2016", ls[0].Slug)
	assert.Equal(t, "toyota-rav4-hybrid-2020", ls[1].Slug)

	q.Offset = 100
	ls, err = repo.Find(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, ls)
}

func TestListingRepository_FindBySlugMissing(t *testing.T) {
	_, err := loadFixtures(t).FindBySlug(context.Background(), "tesla-model-s")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loadFixtures(t).Find(ctx, query.Latest(1))
	assert.ErrorIs(t, err, context.Canceled)
}
