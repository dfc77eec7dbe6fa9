package messages

import (
	"sync"

	"github.com/tessro/onair/internal/core"
)

// MemoryStore keeps messages for the life of the process.
type MemoryStore struct {
	opts Options

	mu   sync.Mutex
	list []core.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{opts: opts.withDefaults()}
}

func (s *MemoryStore) List() ([]core.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Message(nil), s.list...), nil
}

func (s *MemoryStore) Add(in Input) (core.Message, error) {
	m, err := newMessage(in, s.opts)
	if err != nil {
		return core.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = prepend(s.list, m, s.opts.Limit)
	return m, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list, _ = without(s.list, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
