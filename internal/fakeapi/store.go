package fakeapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/muurk/userdeck/internal/users"
)

//go:embed seed/users.json
var defaultSeed []byte

// Store is the in-memory users collection behind the fake API. Records keep
// their insertion order.
type Store struct {
	mu    sync.RWMutex
	users []users.User
}

// NewStore creates a store holding a copy of seed.
func NewStore(seed []users.User) *Store {
	return &Store{users: append([]users.User(nil), seed...)}
}

// DefaultSeed returns the embedded sample users.
func DefaultSeed() []users.User {
	list, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return list
}

// ParseSeed decodes a JSON array of users and rejects duplicate or
// non-positive ids.
func ParseSeed(data []byte) ([]users.User, error) {
	var list []users.User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	seen := make(map[int]bool, len(list))
	for _, u := range list {
		if u.ID <= 0 {
			return nil, fmt.Errorf("seed user %q has invalid id %d", u.Name, u.ID)
		}
		if seen[u.ID] {
			return nil, fmt.Errorf("seed has duplicate id %d", u.ID)
		}
		seen[u.ID] = true
	}
	return list, nil
}

// LoadSeedFile reads a seed from disk; an empty path selects DefaultSeed.
func LoadSeedFile(path string) ([]users.User, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// List returns every user.
func (s *Store) List() []users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]users.User, len(s.users))
	copy(out, s.users)
	return out
}

// Get returns the user with id.
func (s *Store) Get(id int) (users.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return users.Find(s.users, id)
}

// Delete removes the user with id and reports whether it existed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := users.Find(s.users, id); !ok {
		return false
	}
	s.users = users.Without(s.users, id)
	return true
}

// Len returns the number of users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
