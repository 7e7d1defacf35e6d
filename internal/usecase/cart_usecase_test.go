package usecase

import (
	"context"
	"testing"

	"github.com/Canapean/Market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart_QuantityEqualsCallCount(t *testing.T) {
	store := newMockCartStore()
	repo := newMockProductRepo(domain.Product{ID: 7, Title: "Lamp", Price: 10, CategoryID: 1})
	sut := NewCartUseCase(store, repo, testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, sut.AddToCart(ctx, "s1", 7))
	}

	view, err := sut.ViewCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.InDelta(t, 30.0, view.TotalCost, 1e-9)
}

func TestAddToCart_DoesNotValidateProductExists(t *testing.T) {
	store := newMockCartStore()
	sut := NewCartUseCase(store, newMockProductRepo(), testLogger())

	// 99 is not in the catalog; add still succeeds, the id is opaque intent.
	err := sut.AddToCart(context.Background(), "s1", 99)

	require.NoError(t, err)
	assert.True(t, store.hasCart("s1"))
}

func TestRemoveFromCart_ExcludesProductFromView(t *testing.T) {
	store := newMockCartStore()
	repo := newMockProductRepo(domain.Product{ID: 7, Title: "Lamp", Price: 10, CategoryID: 1})
	sut := NewCartUseCase(store, repo, testLogger())
	ctx := context.Background()

	require.NoError(t, sut.AddToCart(ctx, "s1", 7))
	require.NoError(t, sut.RemoveFromCart(ctx, "s1", 7))

	view, err := sut.ViewCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalCost)
}

func TestRemoveFromCart_LastEntryReturnsCartToEmptyState(t *testing.T) {
	store := newMockCartStore()
	sut := NewCartUseCase(store, newMockProductRepo(), testLogger())
	ctx := context.Background()

	require.NoError(t, sut.AddToCart(ctx, "s1", 7))
	require.True(t, store.hasCart("s1"))

	require.NoError(t, sut.RemoveFromCart(ctx, "s1", 7))

	assert.False(t, store.hasCart("s1"))
}

func TestRemoveFromCart_MissingProductIsNoOp(t *testing.T) {
	store := newMockCartStore()
	sut := NewCartUseCase(store, newMockProductRepo(), testLogger())

	err := sut.RemoveFromCart(context.Background(), "s1", 7)

	require.NoError(t, err)
	assert.False(t, store.hasCart("s1"))
}

func TestViewCart_EmptyCart(t *testing.T) {
	sut := NewCartUseCase(newMockCartStore(), newMockProductRepo(), testLogger())

	view, err := sut.ViewCart(context.Background(), "s1")

	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalCost)
}

func TestViewCart_DeletedProductDroppedFromViewAndTotal(t *testing.T) {
	store := newMockCartStore()
	repo := newMockProductRepo(
		domain.Product{ID: 1, Title: "Lamp", Price: 10, CategoryID: 1},
		domain.Product{ID: 2, Title: "Desk", Price: 200, CategoryID: 1},
	)
	sut := NewCartUseCase(store, repo, testLogger())
	ctx := context.Background()

	require.NoError(t, sut.AddToCart(ctx, "s1", 1))
	require.NoError(t, sut.AddToCart(ctx, "s1", 2))

	// Product 2 disappears from the catalog after it was added.
	require.NoError(t, repo.DeleteProduct(2))

	view, err := sut.ViewCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Product.ID)
	assert.InDelta(t, 10.0, view.TotalCost, 1e-9)
}

func TestViewCart_TotalUsesLivePrice(t *testing.T) {
	store := newMockCartStore()
	repo := newMockProductRepo(domain.Product{ID: 1, Title: "Lamp", Price: 10, CategoryID: 1})
	sut := NewCartUseCase(store, repo, testLogger())
	ctx := context.Background()

	require.NoError(t, sut.AddToCart(ctx, "s1", 1))

	// Price changes between add and view; the view reflects the new price.
	repo.products[1] = domain.Product{ID: 1, Title: "Lamp", Price: 25, CategoryID: 1}

	view, err := sut.ViewCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.InDelta(t, 25.0, view.Items[0].LineTotal, 1e-9)
	assert.InDelta(t, 25.0, view.TotalCost, 1e-9)
}

func TestViewCart_LineTotalsMultiplyQuantity(t *testing.T) {
	store := newMockCartStore()
	repo := newMockProductRepo(
		domain.Product{ID: 1, Title: "Lamp", Price: 9.5, CategoryID: 1},
		domain.Product{ID: 2, Title: "Desk", Price: 100, CategoryID: 1},
	)
	sut := NewCartUseCase(store, repo, testLogger())
	ctx := context.Background()

	require.NoError(t, sut.AddToCart(ctx, "s1", 1))
	require.NoError(t, sut.AddToCart(ctx, "s1", 1))
	require.NoError(t, sut.AddToCart(ctx, "s1", 2))

	view, err := sut.ViewCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.InDelta(t, 19.0, view.Items[0].LineTotal, 1e-9)
	assert.InDelta(t, 100.0, view.Items[1].LineTotal, 1e-9)
	assert.InDelta(t, 119.0, view.TotalCost, 1e-9)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	store := newMockCartStore()
	repo := newMockProductRepo(domain.Product{ID: 1, Title: "Lamp", Price: 10, CategoryID: 1})
	sut := NewCartUseCase(store, repo, testLogger())
	ctx := context.Background()

	require.NoError(t, sut.AddToCart(ctx, "s1", 1))

	view, err := sut.ViewCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCart_InvalidInputs(t *testing.T) {
	sut := NewCartUseCase(newMockCartStore(), newMockProductRepo(), testLogger())
	ctx := context.Background()

	assert.ErrorIs(t, sut.AddToCart(ctx, "", 1), domain.ErrValidation)
	assert.ErrorIs(t, sut.AddToCart(ctx, "s1", 0), domain.ErrValidation)
	assert.ErrorIs(t, sut.RemoveFromCart(ctx, "s1", -1), domain.ErrValidation)

	_, err := sut.ViewCart(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
