package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

var httpClient = &http.Client{
	Timeout: 2 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 25,
		IdleConnTimeout:     10 * time.Second,
		ForceAttemptHTTP2:   true,
	},
}

// HTTPGateway talks to a real provider over HTTP. A 404 from the provider
// means it has no offer for the amount; anything else non-200 is a fault.
type HTTPGateway struct {
	name   string
	url    string
	client *http.Client
}

func NewHTTPGateway(name, url string) *HTTPGateway {
	return &HTTPGateway{name: name, url: url, client: httpClient}
}

func (g *HTTPGateway) Name() string { return g.name }

type providerQueryRequest struct {
	Amount float64 `json:"amount"`
}

func (g *HTTPGateway) Query(ctx context.Context, amount float64) (*models.SettlementDetails, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("provider %s: amount must be positive, got %v", g.name, amount)
	}

	body, err := json.Marshal(providerQueryRequest{Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/payment-details", g.url), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider %s: %w", g.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.ErrNoOffer
	}

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("provider %s returned status %d: %s", g.name, resp.StatusCode, string(b))
	}

	var details models.SettlementDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if details.ProviderName == "" {
		details.ProviderName = g.name
	}

	return &details, nil
}
