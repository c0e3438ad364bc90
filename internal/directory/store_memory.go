package directory

import (
	"context"
	"sync"

	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	users map[domain.UserID]*User
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{users: make(map[domain.UserID]*User)}
}

// Upsert keeps the original join date of an existing user.
func (s *InMemoryStore) Upsert(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *user
	if existing, ok := s.users[user.ID]; ok {
		next.DateJoined = existing.DateJoined
		if next.Email == "" {
			next.Email = existing.Email
		}
	}
	s.users[user.ID] = &next
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryStore) Exists(_ context.Context, id domain.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *InMemoryStore) CountActive(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, u := range s.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}
