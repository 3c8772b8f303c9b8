package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store is the durable mapping from extension id to registry entry,
// persisted as a single JSON document. It survives host restarts and is
// owned by the lifecycle manager; hand it to a Manager rather than sharing
// it.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Extension
}

// document is the on-disk shape of the registry file.
type document struct {
	Extensions []Extension `json:"extensions"`
}

// Open loads the registry file at path, creating an empty registry if the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]Extension),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	for _, e := range doc.Extensions {
		s.entries[e.ID] = e
	}
	return s, nil
}

// Get returns the entry for id.
func (s *Store) Get(id string) (Extension, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Has reports whether an entry exists for id.
func (s *Store) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// List returns all entries sorted by id.
func (s *Store) List() []Extension {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Extension, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Put inserts or replaces an entry and persists the registry.
func (s *Store) Put(e Extension) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[e.ID] = e
	return s.save()
}

// Delete removes an entry and persists the registry. Deleting an unknown id
// is a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return s.save()
}

// save writes the registry to a temp file in the same directory and renames
// it into place, so a crash mid-write never leaves a truncated registry.
func (s *Store) save() error {
	doc := document{Extensions: make([]Extension, 0, len(s.entries))}
	for _, e := range s.entries {
		doc.Extensions = append(doc.Extensions, e)
	}
	sort.Slice(doc.Extensions, func(i, j int) bool { return doc.Extensions[i].ID < doc.Extensions[j].ID })

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".registry-*")
	if err != nil {
		return fmt.Errorf("creating temp registry file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing registry file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing registry file: %w", err)
	}
	return nil
}
