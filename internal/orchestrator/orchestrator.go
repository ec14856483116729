package orchestrator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/interfaces"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
	"github.com/akylbek/payment-system/payment-broker/internal/telemetry"
)

// Orchestrator finds the first available settlement offer across an ordered
// provider list. Attempts are strictly sequential: the configured order is a
// priority order, and querying one provider at a time avoids reserving the
// same funds with two providers at once.
type Orchestrator struct {
	providers []interfaces.ProviderGateway
	timeout   time.Duration
	logger    *zap.Logger
}

func New(providers []interfaces.ProviderGateway, timeout time.Duration, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// FindOffer tries each provider in order and returns the first offer. A
// transient provider fault is logged and skipped; it never aborts the
// search. Returns errors.ErrNoProviderAvailable when the list is exhausted.
func (o *Orchestrator) FindOffer(ctx context.Context, amount float64) (*models.SettlementDetails, error) {
	for _, p := range o.providers {
		details, err := o.query(ctx, p, amount)
		if err == nil {
			o.logger.Info("Provider offer found",
				zap.String("provider", p.Name()),
				zap.Float64("amount", amount),
			)
			telemetry.ProviderAttempts.WithLabelValues(p.Name(), "offer").Inc()
			return details, nil
		}

		if errors.Is(err, internalErrors.ErrNoOffer) {
			telemetry.ProviderAttempts.WithLabelValues(p.Name(), "no_offer").Inc()
			continue
		}

		if ctx.Err() != nil {
			// The caller's context is gone; continuing would just
			// fail every remaining provider the same way.
			return nil, ctx.Err()
		}

		telemetry.ProviderAttempts.WithLabelValues(p.Name(), "fault").Inc()
		o.logger.Warn("Provider query faulted, trying next",
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
	}

	return nil, internalErrors.ErrNoProviderAvailable
}

func (o *Orchestrator) query(ctx context.Context, p interfaces.ProviderGateway, amount float64) (*models.SettlementDetails, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	return p.Query(ctx, amount)
}
