package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// Store is a volatile process-local conversation registry. Conversations are
// created with random UUIDs, held for the process lifetime and never evicted.
// Safe for concurrent use; the returned *Conversation carries its own
// synchronization.
type Store struct {
	mu    sync.RWMutex
	convs map[string]*Conversation
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{convs: make(map[string]*Conversation)}
}

// Create allocates and registers a new empty conversation.
func (s *Store) Create() *Conversation {
	conv := &Conversation{ID: uuid.NewString()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[conv.ID] = conv
	return conv
}

// Get returns the conversation for id, or ok=false if none exists.
func (s *Store) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[id]
	return conv, ok
}
