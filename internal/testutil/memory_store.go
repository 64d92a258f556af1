package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/artifacts"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// MemStore is an in-memory artifacts.Store.  Fixtures load through Put;
// FailWith arms a fault that every subsequent call returns, so transport
// error paths can be exercised without a broken backend.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	fault   error
}

type memObject struct {
	payload []byte
	modTime time.Time
}

var _ artifacts.Store = (*MemStore)(nil)

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string]memObject)}
}

// Put stores payload under name and returns the store for chaining.
func (s *MemStore) Put(name string, payload []byte) *MemStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.objects[name] = memObject{payload: cp, modTime: time.Now()}
	return s
}

// Remove deletes name if present.
func (s *MemStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, name)
}

// FailWith makes every subsequent call return err.  Pass nil to clear.
func (s *MemStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

func (s *MemStore) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fault != nil {
		return nil, s.fault
	}
	obj, ok := s.objects[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeArtifactNotFound, "artifact %q not found", name)
	}
	cp := make([]byte, len(obj.payload))
	copy(cp, obj.payload)
	return cp, nil
}

func (s *MemStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fault != nil {
		return false, s.fault
	}
	_, ok := s.objects[name]
	return ok, nil
}

func (s *MemStore) List(_ context.Context) ([]artifacts.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fault != nil {
		return nil, s.fault
	}
	out := make([]artifacts.ObjectInfo, 0, len(s.objects))
	for name, obj := range s.objects {
		out = append(out, artifacts.ObjectInfo{
			Name:         name,
			Size:         int64(len(obj.payload)),
			LastModified: obj.modTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

//Personal.AI order the ending
