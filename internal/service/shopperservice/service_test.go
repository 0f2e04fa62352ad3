package shopperservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/service/shopperservice"
)

type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) FindByID(ctx context.Context, id string) (domain.RawProduct, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.RawProduct), args.Error(1)
}

// failingCache fails every call.
type failingCache struct{ cache.MemoryClient }

func (*failingCache) Get(context.Context, string) (string, error) { return "", errors.New("redis down") }

func newService(products shopperservice.ProductLookup) *shopperservice.Service {
	return shopperservice.NewService(cache.NewMemoryClient(), products, time.Hour, logger.NewLogger("debug"))
}

func TestCart_AddMergeRemoveClear(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	cart, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)

	cart, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", VariantID: "v1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.NotEmpty(t, cart.Items[0].ID)

	cart, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", VariantID: "v1", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", VariantID: "v2"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	other, err := svc.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	cart, err = svc.RemoveCartItem(ctx, "s1", cart.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "v2", cart.Items[0].VariantID)

	_, err = svc.RemoveCartItem(ctx, "s1", "nope")
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	require.NoError(t, svc.ClearCart(ctx, "s1"))
	cart, err = svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCart_Validation(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: " "})
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", Quantity: -1})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", Quantity: shopperservice.MaxQuantity + 1})
	assert.ErrorAs(t, err, &validation)

	cart, err := svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", Quantity: shopperservice.MaxQuantity})
	require.NoError(t, err)
	cart, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, shopperservice.MaxQuantity, cart.Items[0].Quantity)
}

func TestCart_ChecksCatalog(t *testing.T) {
	products := new(MockProductLookup)
	svc := newService(products)
	ctx := context.Background()

	products.On("FindByID", mock.Anything, "p1").Return(domain.RawProduct{ID: "p1", Variants: []domain.Variant{{ID: "v1"}}}, nil)
	products.On("FindByID", mock.Anything, "gone").Return(domain.RawProduct{}, apperror.NewNotFoundError("gone"))

	_, err := svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", VariantID: "v1"})
	require.NoError(t, err)

	var validation *apperror.ValidationError
	_, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "p1", VariantID: "v9"})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.AddToCart(ctx, "s1", domain.CartItem{ProductID: "gone"})
	assert.ErrorAs(t, err, &validation)
}

func TestWishlist_AddIsIdempotentAndRemove(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	wl, err := svc.AddToWishlist(ctx, "s1", "p1")
	require.NoError(t, err)
	wl, err = svc.AddToWishlist(ctx, "s1", "p1")
	require.NoError(t, err)
	wl, err = svc.AddToWishlist(ctx, "s1", "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, wl.ProductIDs)

	wl, err = svc.RemoveFromWishlist(ctx, "s1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, wl.ProductIDs)

	wl, err = svc.RemoveFromWishlist(ctx, "s1", "p9")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, wl.ProductIDs)

	got, err := svc.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Contains("p2"))
	assert.False(t, got.Contains("p1"))
}

func TestWishlist_CacheFailureIsInternal(t *testing.T) {
	svc := shopperservice.NewService(&failingCache{}, nil, time.Hour, logger.NewLogger("debug"))

	_, err := svc.GetWishlist(context.Background(), "s1")

	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
}
