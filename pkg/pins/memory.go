package pins

import (
	"slices"
	"sync"

	"github.com/steamtrack/steamtrack/pkg/errors"
)

// MemoryStore is an in-process pin store safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	list []Pin
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory pin store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// List returns a copy of the pins in insertion order.
func (s *MemoryStore) List() ([]Pin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.list), nil
}

// Add appends a pin, enforcing the cap.
func (s *MemoryStore) Add(pin Pin) error {
	if err := validate(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.list, pin.AppID) != -1 {
		return nil
	}
	if err := checkCapacity(len(s.list)); err != nil {
		return err
	}
	s.list = append(s.list, pin)
	return nil
}

// Remove deletes a pin by app ID.
func (s *MemoryStore) Remove(appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.list, appID)
	if i == -1 {
		return errors.NewNotFoundError("pin", appID)
	}
	s.list = slices.Delete(s.list, i, i+1)
	return nil
}

// Toggle pins or unpins and reports the resulting state.
func (s *MemoryStore) Toggle(pin Pin) (bool, error) {
	if err := validate(pin); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.list, pin.AppID); i != -1 {
		s.list = slices.Delete(s.list, i, i+1)
		return false, nil
	}
	if err := checkCapacity(len(s.list)); err != nil {
		return false, err
	}
	s.list = append(s.list, pin)
	return true, nil
}

// Clear empties the list.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	return nil
}
