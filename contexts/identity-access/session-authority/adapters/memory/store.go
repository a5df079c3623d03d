package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"aegis/contexts/identity-access/session-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/ports"

	"github.com/google/uuid"
)

// Store is a mutex-guarded in-memory adapter implementing the repository,
// clock, and id-generator ports. It is an explicit non-production
// configuration for tests and local development, never a hidden fallback.
type Store struct {
	mu sync.RWMutex

	roles       map[string]entities.Role
	policies    map[string]entities.Policy
	attachments map[string]entities.PolicyAttachment
	sessions    map[string]entities.RoleSession

	base   time.Time
	offset time.Duration
}

func NewStore() *Store {
	return &Store{
		roles:       make(map[string]entities.Role),
		policies:    make(map[string]entities.Policy),
		attachments: make(map[string]entities.PolicyAttachment),
		sessions:    make(map[string]entities.RoleSession),
		base:        time.Now().UTC(),
	}
}

// Now implements ports.Clock. Tests can move the clock with Advance.
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base.Add(s.offset)
}

// Advance shifts the store clock forward for expiry tests.
func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset += d
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateRole(_ context.Context, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.roles {
		if existing.AccountID == role.AccountID && existing.Name == role.Name {
			return fmt.Errorf("%w: role %q already exists in account %s",
				domainerrors.ErrConflict, role.Name, role.AccountID)
		}
	}
	s.roles[role.ID] = role
	return nil
}

func (s *Store) GetRole(_ context.Context, roleID string) (entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[roleID]
	if !ok {
		return entities.Role{}, fmt.Errorf("%w: role %s", domainerrors.ErrNotFound, roleID)
	}
	return role, nil
}

func (s *Store) ListRolesByAccount(_ context.Context, accountID string) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.Role
	for _, role := range s.roles {
		if role.AccountID == accountID {
			items = append(items, role)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) UpdateRole(_ context.Context, update ports.RoleUpdate) (entities.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[update.RoleID]
	if !ok {
		return entities.Role{}, fmt.Errorf("%w: role %s", domainerrors.ErrNotFound, update.RoleID)
	}
	if update.Description != nil {
		role.Description = *update.Description
	}
	if update.MaxSessionDuration != nil {
		role.MaxSessionDuration = *update.MaxSessionDuration
	}
	if update.TrustPolicy != nil {
		role.TrustPolicy = *update.TrustPolicy
	}
	role.UpdatedAt = update.UpdatedAt
	s.roles[update.RoleID] = role
	return role, nil
}

func (s *Store) DeleteRole(_ context.Context, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return fmt.Errorf("%w: role %s", domainerrors.ErrNotFound, roleID)
	}
	delete(s.roles, roleID)
	for key, attachment := range s.attachments {
		if attachment.RoleID == roleID {
			delete(s.attachments, key)
		}
	}
	return nil
}

func (s *Store) CreatePolicy(_ context.Context, item entities.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.policies {
		if existing.AccountID == item.AccountID && existing.Name == item.Name {
			return fmt.Errorf("%w: policy %q already exists in account %s",
				domainerrors.ErrConflict, item.Name, item.AccountID)
		}
	}
	s.policies[item.ID] = item
	return nil
}

func (s *Store) GetPolicyByID(_ context.Context, accountID string, policyID string) (entities.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.policies[policyID]
	if !ok || item.AccountID != accountID {
		return entities.Policy{}, fmt.Errorf("%w: policy %s", domainerrors.ErrNotFound, policyID)
	}
	return item, nil
}

func (s *Store) GetPolicyByName(_ context.Context, accountID string, name string) (entities.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.policies {
		if item.AccountID == accountID && item.Name == name {
			return item, nil
		}
	}
	return entities.Policy{}, fmt.Errorf("%w: policy %s", domainerrors.ErrNotFound, name)
}

func (s *Store) AttachPolicy(_ context.Context, attachment entities.PolicyAttachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := attachment.RoleID + "|" + attachment.PolicyID
	if _, ok := s.attachments[key]; ok {
		return fmt.Errorf("%w: policy already attached", domainerrors.ErrConflict)
	}
	s.attachments[key] = attachment
	return nil
}

func (s *Store) DetachPolicy(_ context.Context, roleID string, policyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := roleID + "|" + policyID
	if _, ok := s.attachments[key]; !ok {
		return fmt.Errorf("%w: no attachment for role %s", domainerrors.ErrNotFound, roleID)
	}
	delete(s.attachments, key)
	return nil
}

func (s *Store) ListRolePolicies(_ context.Context, roleID string) ([]entities.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var joined []entities.PolicyAttachment
	for _, attachment := range s.attachments {
		if attachment.RoleID == roleID {
			joined = append(joined, attachment)
		}
	}
	sort.Slice(joined, func(i, j int) bool { return joined[i].AttachedAt.Before(joined[j].AttachedAt) })

	items := make([]entities.Policy, 0, len(joined))
	for _, attachment := range joined {
		if item, ok := s.policies[attachment.PolicyID]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Store) CreateSession(_ context.Context, session entities.RoleSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("%w: session %s already exists", domainerrors.ErrConflict, session.ID)
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (entities.RoleSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return entities.RoleSession{}, fmt.Errorf("%w: session %s", domainerrors.ErrNotFound, sessionID)
	}
	return session, nil
}

func (s *Store) ListActiveSessions(_ context.Context, accountID string, now time.Time) ([]entities.RoleSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.RoleSession
	for _, session := range s.sessions {
		role, ok := s.roles[session.RoleID]
		if !ok || role.AccountID != accountID {
			continue
		}
		if session.Active(now) {
			items = append(items, session)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AssumedAt.Before(items[j].AssumedAt) })
	return items, nil
}

func (s *Store) DeactivateSession(_ context.Context, sessionID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || !session.Active(now) {
		return false, nil
	}
	session.IsActive = false
	s.sessions[sessionID] = session
	return true, nil
}

func (s *Store) DeactivateExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var swept int64
	for id, session := range s.sessions {
		if session.IsActive && !session.ExpiresAt.After(now) {
			session.IsActive = false
			s.sessions[id] = session
			swept++
		}
	}
	return swept, nil
}
