package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

func TestSimulatedAlwaysOfferingProvider(t *testing.T) {
	s := NewSimulatedDeterministic("Provider_5", 1, 0)
	s.alwaysOffer = true

	for i := 0; i < 10; i++ {
		details, err := s.Query(context.Background(), 250)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if details.Amount != 250 {
			t.Errorf("amount %v, want 250", details.Amount)
		}
		if details.Currency != models.CurrencyRUB {
			t.Errorf("currency %s, want RUB", details.Currency)
		}
		if details.ProviderName != "Provider_5" {
			t.Errorf("provider %s, want Provider_5", details.ProviderName)
		}
	}
}

func TestNewSimulatedMarksProviderFiveAsAlwaysOffering(t *testing.T) {
	if !NewSimulated("Provider_5").alwaysOffer {
		t.Error("Provider_5 should always have an offer")
	}
	if NewSimulated("Provider_1").alwaysOffer {
		t.Error("Provider_1 should not always have an offer")
	}
}

func TestSimulatedCertainOffer(t *testing.T) {
	s := NewSimulatedDeterministic("Provider_3", 42, 1.0)

	details, err := s.Query(context.Background(), 99.5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !strings.HasPrefix(details.CardNumber, "2200 ") {
		t.Errorf("unexpected card number format: %s", details.CardNumber)
	}
	if details.ProviderName != "Provider_3" {
		t.Errorf("provider %s, want Provider_3", details.ProviderName)
	}
}

func TestSimulatedCertainDecline(t *testing.T) {
	s := NewSimulatedDeterministic("Provider_1", 42, 0.0)

	_, err := s.Query(context.Background(), 100)
	if !errors.Is(err, internalErrors.ErrNoOffer) {
		t.Fatalf("expected ErrNoOffer, got %v", err)
	}
}

func TestSimulatedRejectsNonPositiveAmount(t *testing.T) {
	s := NewSimulatedDeterministic("Provider_1", 1, 1.0)

	for _, amount := range []float64{0, -10} {
		_, err := s.Query(context.Background(), amount)
		if err == nil {
			t.Fatalf("amount %v: expected error", amount)
		}
		if errors.Is(err, internalErrors.ErrNoOffer) {
			t.Errorf("amount %v: invalid input must not look like a plain no-offer", amount)
		}
	}
}
