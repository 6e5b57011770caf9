package pins

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/errors"
)

// FileStore persists pins to a YAML file so the list survives sessions.
// Every mutation rewrites the file; the list is capped, so the file stays
// a handful of lines.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the given YAML file. The file is
// created on first write; a missing file reads as an empty list.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// List reads the pins from disk.
func (s *FileStore) List() ([]Pin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends a pin and rewrites the file.
func (s *FileStore) Add(pin Pin) error {
	if err := validate(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(list, pin.AppID) != -1 {
		return nil
	}
	if err := checkCapacity(len(list)); err != nil {
		return err
	}
	return s.save(append(list, pin))
}

// Remove deletes a pin by app ID and rewrites the file.
func (s *FileStore) Remove(appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(list, appID)
	if i == -1 {
		return errors.NewNotFoundError("pin", appID)
	}
	return s.save(slices.Delete(list, i, i+1))
}

// Toggle pins or unpins and reports the resulting state.
func (s *FileStore) Toggle(pin Pin) (bool, error) {
	if err := validate(pin); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return false, err
	}
	if i := indexOf(list, pin.AppID); i != -1 {
		return false, s.save(slices.Delete(list, i, i+1))
	}
	if err := checkCapacity(len(list)); err != nil {
		return false, err
	}
	return true, s.save(append(list, pin))
}

// Clear empties the list on disk.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(nil)
}

func (s *FileStore) load() ([]Pin, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", s.path, err)
	}
	var list []Pin
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, errors.WrapParse("yaml", s.path, err)
	}
	return list, nil
}

func (s *FileStore) save(list []Pin) error {
	data, err := yaml.Marshal(list)
	if err != nil {
		return errors.WrapParse("yaml", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}
