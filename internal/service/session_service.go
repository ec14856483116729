package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/events"
	"github.com/akylbek/payment-system/payment-broker/internal/interfaces"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
	"github.com/akylbek/payment-system/payment-broker/internal/telemetry"
)

// OfferFinder is the orchestrator's contract as seen by the session service.
type OfferFinder interface {
	FindOffer(ctx context.Context, amount float64) (*models.SettlementDetails, error)
}

// SessionService ties the provider search to session creation and exposes
// read/confirm/cancel over the store.
type SessionService struct {
	finder    OfferFinder
	store     interfaces.SessionStore
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewSessionService(finder OfferFinder, store interfaces.SessionStore, publisher *events.Publisher, logger *zap.Logger) *SessionService {
	return &SessionService{
		finder:    finder,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Provision searches the providers for an offer and stores it under a new
// session id. Validation happens before any provider is contacted.
func (s *SessionService) Provision(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", internalErrors.ErrInvalidAmount
	}

	details, err := s.finder.FindOffer(ctx, amount)
	if err != nil {
		return "", err
	}

	id, err := s.store.Put(ctx, *details)
	if err != nil {
		return "", fmt.Errorf("failed to create payment session: %w", err)
	}

	telemetry.SessionsCreated.Inc()
	s.publisher.Publish(ctx, events.SessionCreated, id, *details)

	s.logger.Info("Payment session created",
		zap.String("session_id", id),
		zap.String("provider", details.ProviderName),
		zap.Float64("amount", details.Amount),
	)

	return id, nil
}

func (s *SessionService) Read(ctx context.Context, id string) (*models.SettlementDetails, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &session.Details, nil
}

// Confirm consumes the session: the first call returns its details and
// deletes it, any later call misses exactly like a plain lookup would.
func (s *SessionService) Confirm(ctx context.Context, id string) (*models.SettlementDetails, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to consume payment session: %w", err)
	}

	telemetry.SessionsConfirmed.Inc()
	s.publisher.Publish(ctx, events.SessionConfirmed, id, session.Details)

	s.logger.Info("Payment session confirmed",
		zap.String("session_id", id),
		zap.String("provider", session.Details.ProviderName),
	)

	return &session.Details, nil
}

// Cancel removes the session if it still exists. Canceling an absent or
// expired session is handled, not an error; the bool reports whether
// anything was actually removed.
func (s *SessionService) Cancel(ctx context.Context, id string) (bool, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil && !errors.Is(err, internalErrors.ErrSessionNotFound) {
		return false, err
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment session: %w", err)
	}

	if removed {
		telemetry.SessionsCanceled.Inc()
		if session != nil {
			s.publisher.Publish(ctx, events.SessionCanceled, id, session.Details)
		}
		s.logger.Info("Payment session canceled", zap.String("session_id", id))
	}

	return removed, nil
}
