package catfile

import (
	"context"
	"sync"

	"gitlab.com/gitlab-org/gitref/internal/git"
)

// MemoryStore is an InfoReader serving headers kept in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[git.ObjectID]ObjectInfo
}

// NewMemoryStore returns a MemoryStore holding objects.
func NewMemoryStore(objects ...ObjectInfo) *MemoryStore {
	s := &MemoryStore{objects: make(map[git.ObjectID]ObjectInfo, len(objects))}
	for _, info := range objects {
		s.objects[info.Oid] = info
	}
	return s
}

// Add stores info, replacing the header of any object with the same ID.
func (s *MemoryStore) Add(info ObjectInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[info.Oid] = info
}

// Remove drops the object identified by oid.
func (s *MemoryStore) Remove(oid git.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, oid)
}

func (s *MemoryStore) Info(ctx context.Context, oid git.ObjectID) (*ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.objects[oid]
	if !ok {
		return nil, NewNotFoundError(oid)
	}
	return &info, nil
}
