package interfaces

import (
	"context"

	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

// ProviderGateway wraps a single external payment provider. Query returns
// settlement details for the amount, errors.ErrNoOffer when the provider has
// nothing to offer, or any other error for a transient fault.
type ProviderGateway interface {
	Name() string
	Query(ctx context.Context, amount float64) (*models.SettlementDetails, error)
}
