package ports

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
)

// ErrTokenInvalid is returned when a review token is unknown, expired,
// or has already been consumed. The store never distinguishes these
// cases to the caller.
var ErrTokenInvalid = errors.New("review token is invalid")

// TokenStore defines the contract for single-use review tokens.
// A token authorizes exactly one review submission for a delivered shipment.
type TokenStore interface {
	// Issue creates a new opaque token bound to the given shipment.
	// Issuing again for the same shipment produces a new independent token.
	Issue(ctx context.Context, shipmentID kernel.UUID) (string, error)

	// Consume atomically resolves and invalidates a token, returning the
	// shipment it was bound to. A token can be consumed at most once;
	// any subsequent attempt returns ErrTokenInvalid.
	Consume(ctx context.Context, token string) (kernel.UUID, error)
}
