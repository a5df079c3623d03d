package memory

import (
	"context"
	"sync"
	"time"

	"aegis/contexts/identity-access/token-authority/domain/entities"
)

// Store is the in-memory Tier-2 store plus user directory used by the
// explicit non-production memory mode and by tests. It also serves as
// the module clock: Advance shifts observed time without sleeping.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entities.RevocationEntry
	users   []seededUser

	clockMu sync.Mutex
	offset  time.Duration
}

type seededUser struct {
	user     entities.User
	password string
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entities.RevocationEntry),
	}
}

// Now returns real time shifted by the accumulated Advance offset.
func (s *Store) Now() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	return time.Now().UTC().Add(s.offset)
}

// Advance shifts the clock forward for expiry tests.
func (s *Store) Advance(d time.Duration) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.offset += d
}

func (s *Store) Put(_ context.Context, entry entities.RevocationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Fingerprint] = entry
	return nil
}

func (s *Store) Get(_ context.Context, fingerprint string) (entities.RevocationEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[fingerprint]
	return entry, ok, nil
}

func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for fingerprint, entry := range s.entries {
		if !entry.ExpiresAt.After(now) {
			delete(s.entries, fingerprint)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// SeedUser registers a directory user for the memory configuration.
func (s *Store) SeedUser(user entities.User, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, seededUser{user: user, password: password})
}

// AuthenticateUser matches by email and password. A miss returns a nil
// user with a nil error, mirroring the external directory contract.
func (s *Store) AuthenticateUser(_ context.Context, email, password string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, seeded := range s.users {
		if seeded.user.Email == email && seeded.password == password {
			user := seeded.user
			return &user, nil
		}
	}
	return nil, nil
}

func (s *Store) AuthenticateIAMUser(_ context.Context, accountID, username, password string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, seeded := range s.users {
		if seeded.user.AccountID == accountID && seeded.user.Username == username && seeded.password == password {
			user := seeded.user
			return &user, nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByID(_ context.Context, userID string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, seeded := range s.users {
		if seeded.user.ID == userID {
			user := seeded.user
			return &user, nil
		}
	}
	return nil, nil
}

// SetUserActive flips a seeded user's active flag, for deactivation tests.
func (s *Store) SetUserActive(userID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].user.ID == userID {
			s.users[i].user.IsActive = active
		}
	}
}
