package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/interfaces"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

type fakeGateway struct {
	name    string
	details *models.SettlementDetails
	err     error
	delay   time.Duration
	calls   *[]string
}

func (f *fakeGateway) Name() string { return f.name }

func (f *fakeGateway) Query(ctx context.Context, amount float64) (*models.SettlementDetails, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func offerFrom(name string, amount float64) *models.SettlementDetails {
	return &models.SettlementDetails{
		CardNumber:   "2200 0000 0000 0001",
		Amount:       amount,
		Currency:     models.CurrencyRUB,
		ProviderName: name,
	}
}

func TestFindOfferRespectsProviderOrder(t *testing.T) {
	var calls []string
	providers := []interfaces.ProviderGateway{
		&fakeGateway{name: "P1", details: offerFrom("P1", 100), calls: &calls},
		&fakeGateway{name: "P2", details: offerFrom("P2", 100), calls: &calls},
		&fakeGateway{name: "P3", details: offerFrom("P3", 100), calls: &calls},
	}

	o := New(providers, time.Second, zap.NewNop())

	details, err := o.FindOffer(context.Background(), 100)
	if err != nil {
		t.Fatalf("FindOffer returned error: %v", err)
	}
	if details.ProviderName != "P1" {
		t.Errorf("expected offer from P1, got %s", details.ProviderName)
	}
	if len(calls) != 1 || calls[0] != "P1" {
		t.Errorf("expected only P1 to be queried, got %v", calls)
	}
}

func TestFindOfferSkipsNoOffer(t *testing.T) {
	var calls []string
	providers := []interfaces.ProviderGateway{
		&fakeGateway{name: "P1", err: internalErrors.ErrNoOffer, calls: &calls},
		&fakeGateway{name: "P2", err: internalErrors.ErrNoOffer, calls: &calls},
		&fakeGateway{name: "P3", details: offerFrom("P3", 50), calls: &calls},
	}

	o := New(providers, time.Second, zap.NewNop())

	details, err := o.FindOffer(context.Background(), 50)
	if err != nil {
		t.Fatalf("FindOffer returned error: %v", err)
	}
	if details.ProviderName != "P3" {
		t.Errorf("expected offer from P3, got %s", details.ProviderName)
	}
	if len(calls) != 3 {
		t.Errorf("expected 3 sequential attempts, got %v", calls)
	}
}

func TestFindOfferContinuesPastFault(t *testing.T) {
	providers := []interfaces.ProviderGateway{
		&fakeGateway{name: "P1", err: errors.New("connection refused")},
		&fakeGateway{name: "P2", details: offerFrom("P2", 75)},
	}

	o := New(providers, time.Second, zap.NewNop())

	details, err := o.FindOffer(context.Background(), 75)
	if err != nil {
		t.Fatalf("FindOffer returned error: %v", err)
	}
	if details.ProviderName != "P2" {
		t.Errorf("expected offer from P2 after P1 fault, got %s", details.ProviderName)
	}
}

func TestFindOfferExhaustedReturnsNoProviderAvailable(t *testing.T) {
	providers := []interfaces.ProviderGateway{
		&fakeGateway{name: "P1", err: internalErrors.ErrNoOffer},
		&fakeGateway{name: "P2", err: errors.New("timeout")},
		&fakeGateway{name: "P3", err: internalErrors.ErrNoOffer},
	}

	o := New(providers, time.Second, zap.NewNop())

	_, err := o.FindOffer(context.Background(), 10)
	if !errors.Is(err, internalErrors.ErrNoProviderAvailable) {
		t.Fatalf("expected ErrNoProviderAvailable, got %v", err)
	}
}

func TestFindOfferBoundsSlowProvider(t *testing.T) {
	providers := []interfaces.ProviderGateway{
		&fakeGateway{name: "P1", details: offerFrom("P1", 20), delay: 500 * time.Millisecond},
		&fakeGateway{name: "P2", details: offerFrom("P2", 20)},
	}

	o := New(providers, 20*time.Millisecond, zap.NewNop())

	details, err := o.FindOffer(context.Background(), 20)
	if err != nil {
		t.Fatalf("FindOffer returned error: %v", err)
	}
	if details.ProviderName != "P2" {
		t.Errorf("expected timed-out P1 to be skipped, got offer from %s", details.ProviderName)
	}
}

func TestFindOfferStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []string
	providers := []interfaces.ProviderGateway{
		&fakeGateway{name: "P1", err: context.Canceled, calls: &calls},
		&fakeGateway{name: "P2", details: offerFrom("P2", 30), calls: &calls},
	}

	o := New(providers, time.Second, zap.NewNop())

	_, err := o.FindOffer(ctx, 30)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(calls) != 1 {
		t.Errorf("expected search to stop after caller cancellation, calls: %v", calls)
	}
}
