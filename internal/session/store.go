package session

import (
	"context"

	"github.com/Canapean/Market/internal/domain"
)

// CartStore holds one cart per session. A session without a cart yields an
// empty cart, not an error; saving an empty cart drops the key so the
// session returns to its initial state.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
}
