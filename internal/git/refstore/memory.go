package refstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// MemoryStore is a Store keeping its records in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	refs map[string]*git.Reference
}

// NewMemoryStore returns a MemoryStore holding refs.
func NewMemoryStore(refs ...*git.Reference) *MemoryStore {
	s := &MemoryStore{refs: make(map[string]*git.Reference, len(refs))}
	for _, ref := range refs {
		s.refs[ref.Name()] = ref
	}
	return s
}

// Set adds ref to the store, replacing any record with the same name.
func (s *MemoryStore) Set(ref *git.Reference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[ref.Name()] = ref
}

// Delete removes the record called name.
func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refs, name)
}

func (s *MemoryStore) ReadReference(ctx context.Context, name string) (*git.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.refs[name]
	if !ok {
		return nil, git.ErrReferenceNotFound
	}
	return ref, nil
}

func (s *MemoryStore) ListReferences(ctx context.Context, prefix string) ([]*git.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var refs []*git.Reference
	for name, ref := range s.refs {
		if strings.HasPrefix(name, prefix) {
			refs = append(refs, ref)
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name() < refs[j].Name() })
	return refs, nil
}
