package usecase

import (
	"context"
	"fmt"

	"github.com/Canapean/Market/internal/domain"
	"github.com/Canapean/Market/internal/session"

	"github.com/sirupsen/logrus"
)

type CartUseCase interface {
	// AddToCart increments the quantity for the product by one, creating
	// the cart on first use. The product id is not resolved against the
	// catalog here; reconciliation happens at view time.
	AddToCart(ctx context.Context, sessionID string, productID int) error
	// RemoveFromCart drops the product entirely. Removing an id that is
	// not in the cart is a silent no-op.
	RemoveFromCart(ctx context.Context, sessionID string, productID int) error
	// ViewCart hydrates the cart against the live catalog. Entries whose
	// product no longer exists are dropped from the view and the total.
	ViewCart(ctx context.Context, sessionID string) (*domain.CartView, error)
}

type cartUseCase struct {
	store       session.CartStore
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewCartUseCase(store session.CartStore, productRepo domain.ProductRepository, logger *logrus.Logger) CartUseCase {
	return &cartUseCase{
		store:       store,
		productRepo: productRepo,
		log:         logger,
	}
}

func (uc *cartUseCase) AddToCart(ctx context.Context, sessionID string, productID int) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session ID cannot be empty", domain.ErrValidation)
	}
	if productID <= 0 {
		uc.log.Warnf("Use Case: Attempted to add invalid product ID %d to cart", productID)
		return fmt.Errorf("%w: invalid product ID", domain.ErrValidation)
	}

	cart, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load cart for session %s: %v", sessionID, err)
		return fmt.Errorf("could not load cart: %w", err)
	}

	cart = cart.Add(productID)

	if err := uc.store.Save(ctx, sessionID, cart); err != nil {
		uc.log.Errorf("Use Case: Failed to save cart for session %s: %v", sessionID, err)
		return fmt.Errorf("could not save cart: %w", err)
	}

	uc.log.Infof("Use Case: Product %d added to cart (session %s), quantity now %d", productID, sessionID, cart.Quantity(productID))
	return nil
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, sessionID string, productID int) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session ID cannot be empty", domain.ErrValidation)
	}
	if productID <= 0 {
		uc.log.Warnf("Use Case: Attempted to remove invalid product ID %d from cart", productID)
		return fmt.Errorf("%w: invalid product ID", domain.ErrValidation)
	}

	cart, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load cart for session %s: %v", sessionID, err)
		return fmt.Errorf("could not load cart: %w", err)
	}

	if cart.Quantity(productID) == 0 {
		// Not in the cart: nothing to do.
		return nil
	}

	cart = cart.Remove(productID)

	if err := uc.store.Save(ctx, sessionID, cart); err != nil {
		uc.log.Errorf("Use Case: Failed to save cart for session %s: %v", sessionID, err)
		return fmt.Errorf("could not save cart: %w", err)
	}

	uc.log.Infof("Use Case: Product %d removed from cart (session %s)", productID, sessionID)
	return nil
}

func (uc *cartUseCase) ViewCart(ctx context.Context, sessionID string) (*domain.CartView, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session ID cannot be empty", domain.ErrValidation)
	}

	cart, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load cart for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("could not load cart: %w", err)
	}

	view := &domain.CartView{Items: []domain.CartLine{}}
	ids := cart.ProductIDs()
	if len(ids) == 0 {
		return view, nil
	}

	products, err := uc.productRepo.GetProductsByIDs(ids)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to resolve cart products for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("could not resolve cart products: %w", err)
	}

	// Entries without a matching product have drifted out of the catalog
	// since they were added; they vanish from the view and the total.
	for _, product := range products {
		quantity := cart.Quantity(product.ID)
		if quantity <= 0 {
			continue
		}
		lineTotal := product.Price * float64(quantity)
		view.Items = append(view.Items, domain.CartLine{
			Product:   product,
			Quantity:  quantity,
			LineTotal: lineTotal,
		})
		view.TotalCost += lineTotal
	}

	if dropped := len(ids) - len(view.Items); dropped > 0 {
		uc.log.Infof("Use Case: Dropped %d unresolvable cart entr(ies) for session %s", dropped, sessionID)
	}

	return view, nil
}
