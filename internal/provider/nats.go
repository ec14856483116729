package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

// NATSGateway queries a provider over NATS request/reply on the subject
// providers.{name}.quote. The reply carries either settlement details or
// an available=false flag for a plain no-offer.
type NATSGateway struct {
	name string
	nc   *nats.Conn
}

func NewNATSGateway(name string, nc *nats.Conn) *NATSGateway {
	return &NATSGateway{name: name, nc: nc}
}

func (g *NATSGateway) Name() string { return g.name }

type quoteRequest struct {
	Amount float64 `json:"amount"`
}

type quoteResponse struct {
	Available bool                      `json:"available"`
	Details   *models.SettlementDetails `json:"details,omitempty"`
}

func (g *NATSGateway) Query(ctx context.Context, amount float64) (*models.SettlementDetails, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("provider %s: amount must be positive, got %v", g.name, amount)
	}

	payload, err := json.Marshal(quoteRequest{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote request: %w", err)
	}

	msg, err := g.nc.RequestWithContext(ctx, fmt.Sprintf("providers.%s.quote", g.name), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider %s: %w", g.name, err)
	}

	var resp quoteResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if !resp.Available || resp.Details == nil {
		return nil, errors.ErrNoOffer
	}

	if resp.Details.ProviderName == "" {
		resp.Details.ProviderName = g.name
	}

	return resp.Details, nil
}
