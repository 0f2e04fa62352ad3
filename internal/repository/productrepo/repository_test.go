package productrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/catalogapi"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/repository/productrepo"
)

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) SearchProducts(ctx context.Context, params catalogapi.SearchParams) (domain.CatalogPage, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.CatalogPage), args.Error(1)
}

func (m *MockCatalogClient) GetProduct(ctx context.Context, id string) (domain.RawProduct, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.RawProduct), args.Error(1)
}

func TestFindByID_CacheAside(t *testing.T) {
	catalog := new(MockCatalogClient)
	cacheClient := cache.NewMemoryClient()
	repo := productrepo.NewProductRepository(catalog, cacheClient, time.Minute, logger.NewLogger("debug"))
	ctx := context.Background()

	product := domain.RawProduct{ID: "p1", Name: "Chesterfield", BasePrice: 1000}
	catalog.On("GetProduct", mock.Anything, "p1").Return(product, nil).Once()

	first, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Chesterfield", first.Name)

	second, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.BasePrice, second.BasePrice)

	catalog.AssertNumberOfCalls(t, "GetProduct", 1)
}

func TestFindByID_CorruptCacheEntryFallsBackToCatalog(t *testing.T) {
	catalog := new(MockCatalogClient)
	cacheClient := cache.NewMemoryClient()
	require.NoError(t, cacheClient.Set(context.Background(), "product:p1", "{not json", time.Minute))
	repo := productrepo.NewProductRepository(catalog, cacheClient, time.Minute, logger.NewLogger("debug"))

	catalog.On("GetProduct", mock.Anything, "p1").Return(domain.RawProduct{ID: "p1", Name: "Fresh"}, nil).Once()

	got, err := repo.FindByID(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.Name)
	catalog.AssertExpectations(t)
}

func TestFindByID_ErrorsAreNotCached(t *testing.T) {
	catalog := new(MockCatalogClient)
	cacheClient := cache.NewMemoryClient()
	repo := productrepo.NewProductRepository(catalog, cacheClient, time.Minute, logger.NewLogger("debug"))

	catalog.On("GetProduct", mock.Anything, "missing").Return(domain.RawProduct{}, apperror.NewNotFoundError("missing")).Twice()

	for i := 0; i < 2; i++ {
		_, err := repo.FindByID(context.Background(), "missing")
		var notFound *apperror.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	}
	catalog.AssertExpectations(t)
}

func TestSearch_Delegates(t *testing.T) {
	catalog := new(MockCatalogClient)
	repo := productrepo.NewProductRepository(catalog, cache.NewMemoryClient(), time.Minute, logger.NewLogger("debug"))
	params := catalogapi.SearchParams{Page: 1, Limit: 12}
	page := domain.CatalogPage{Items: []domain.RawProduct{{ID: "a"}}, Meta: domain.PageMeta{TotalPages: 1}}

	catalog.On("SearchProducts", mock.Anything, params).Return(page, nil)

	got, err := repo.Search(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, page, got)
}
