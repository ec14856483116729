package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

// MemoryStore is a process-local session store with lazy expiry. It backs
// tests and runs without any external store configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.PaymentSession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.PaymentSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock replaces the time source, letting tests fast-forward past the TTL.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Put(_ context.Context, details models.SettlementDetails) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	createdAt := s.now()
	s.sessions[id] = models.PaymentSession{
		ID:        id,
		Details:   details,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(s.ttl),
	}

	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.PaymentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, internalErrors.ErrSessionNotFound
	}

	if session.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, internalErrors.ErrSessionNotFound
	}

	return &session, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return false, nil
	}
	delete(s.sessions, id)

	// An expired entry that was never read is already dead; removing it
	// must look like removing nothing.
	if session.Expired(s.now()) {
		return false, nil
	}

	return true, nil
}
