package cart

import "sync"

// MemoryStore keeps guest carts in process memory, keyed by the guest token
// cookie. Contents are lost on restart, which matches the device-local
// semantics of a guest cart; guests must log in before checkout anyway.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Line)}
}

func (s *MemoryStore) Items(owner string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *MemoryStore) Add(owner string, productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			return nil
		}
	}
	s.carts[owner] = append(lines, Line{ProductID: productID, Quantity: quantity})
	return nil
}

func (s *MemoryStore) Update(owner string, productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotInCart
}

func (s *MemoryStore) Remove(owner string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[owner] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

func (s *MemoryStore) Clear(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, owner)
	return nil
}
