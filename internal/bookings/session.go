package bookings

import (
	"context"
	"time"

	"tourly/internal/shared/constants"
	"tourly/pkg/cache"
)

// SessionStore persists booking wizard sessions in Redis with a TTL.
// Closing a wizard deletes the session outright; there is no partial save.
type SessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewSessionStore(cacheService cache.Service, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cacheService, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, wizard *Wizard) error {
	return s.cache.Set(ctx, constants.BookingWizardKey(wizard.SessionID.String()), wizard, s.ttl)
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Wizard, error) {
	var wizard Wizard
	err := s.cache.Get(ctx, constants.BookingWizardKey(sessionID), &wizard)
	if err != nil {
		if err == cache.ErrCacheMiss {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &wizard, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, constants.BookingWizardKey(sessionID))
}
