package interfaces

import (
	"context"

	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

// SessionStore defines the contract for payment session persistence.
// Implementations must never return a session past its expiry and must
// treat Delete of an absent id as a no-op.
type SessionStore interface {
	// Put stores the details under a fresh unique id and returns it.
	Put(ctx context.Context, details models.SettlementDetails) (string, error)
	// Get returns the live session or errors.ErrSessionNotFound. Absence
	// and expiry are indistinguishable to callers.
	Get(ctx context.Context, id string) (*models.PaymentSession, error)
	// Delete removes the session if present and reports whether anything
	// was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
