package cart

import "sync"

// Store keeps one cart per user, in memory only. Carts are created lazily
// on first access and vanish with the process, which matches the cart's
// single-device, non-recoverable scope.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// ForUser returns the user's cart, creating it on first access.
func (s *Store) ForUser(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Drop discards the user's cart entirely.
func (s *Store) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
