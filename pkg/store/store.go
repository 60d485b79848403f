// Package store holds user accounts. Registration writes and login reads
// race across connection workers, so every implementation must be safe for
// concurrent use.
package store

import (
	"sync"

	"minihttpd/pkg/models"
)

// Store is the user-store collaborator consumed by the login and register
// handlers.
type Store interface {
	// FindByAccount returns the stored user for account, if any.
	FindByAccount(account string) (models.User, bool)
	// Save persists the user, replacing any existing user with the same
	// account.
	Save(user models.User) error
	Close() error
}

// Memory is an in-process Store guarded by a RWMutex.
type Memory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{users: map[string]models.User{}}
}

func (m *Memory) FindByAccount(account string) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[account]
	return u, ok
}

func (m *Memory) Save(user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Account] = user
	return nil
}

func (m *Memory) Close() error { return nil }

// Bootstrap seeds the store with fixture users unless their accounts are
// already present.
func Bootstrap(s Store, users ...models.User) error {
	for _, u := range users {
		if _, ok := s.FindByAccount(u.Account); ok {
			continue
		}
		if err := s.Save(u); err != nil {
			return err
		}
	}
	return nil
}
