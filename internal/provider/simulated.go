package provider

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

// Simulated stands in for a real provider during local development. It
// answers after a randomized delay; Provider_5 always has an offer, the
// rest decline most of the time.
type Simulated struct {
	name        string
	alwaysOffer bool
	offerRate   float64
	minDelay    time.Duration
	maxDelay    time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulated(name string) *Simulated {
	return &Simulated{
		name:        name,
		alwaysOffer: name == "Provider_5",
		offerRate:   0.3,
		minDelay:    500 * time.Millisecond,
		maxDelay:    1500 * time.Millisecond,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSimulatedDeterministic pins the random source and removes the delay.
func NewSimulatedDeterministic(name string, seed int64, offerRate float64) *Simulated {
	return &Simulated{
		name:      name,
		offerRate: offerRate,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (s *Simulated) Name() string { return s.name }

func (s *Simulated) Query(ctx context.Context, amount float64) (*models.SettlementDetails, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("provider %s: amount must be positive, got %v", s.name, amount)
	}

	if d := s.delay(); d > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d):
		}
	}

	if s.alwaysOffer {
		return &models.SettlementDetails{
			CardNumber:   "2200 1234 5678 9000",
			Amount:       amount,
			Currency:     models.CurrencyRUB,
			ProviderName: s.name,
		}, nil
	}

	s.mu.Lock()
	declined := s.rng.Float64() > s.offerRate
	a, b, c := s.rng.Intn(10000), s.rng.Intn(10000), s.rng.Intn(10000)
	s.mu.Unlock()

	if declined {
		return nil, errors.ErrNoOffer
	}

	return &models.SettlementDetails{
		CardNumber:   fmt.Sprintf("2200 %04d %04d %04d", a, b, c),
		Amount:       amount,
		Currency:     models.CurrencyRUB,
		ProviderName: s.name,
	}, nil
}

func (s *Simulated) delay() time.Duration {
	if s.maxDelay <= s.minDelay {
		return s.minDelay
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minDelay + time.Duration(s.rng.Int63n(int64(s.maxDelay-s.minDelay)))
}
