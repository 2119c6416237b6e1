package session

import (
	"context"
	"sync"
	"time"
)

// maxSweepInterval bounds how long expired sessions linger for long ttls.
const maxSweepInterval = 10 * time.Minute

// MemoryStore is an in-process Store. Sessions expire ttl after their last
// use; a background sweep drops the expired ones.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memorySession
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type memorySession struct {
	keys    map[string]struct{}
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go s.sweep(min(ttl, maxSweepInterval))
	return s
}

func (s *MemoryStore) Bag(id string) Bag {
	return &memoryBag{store: s, id: id}
}

// Close stops the sweep and forgets every session.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*memorySession)
	return nil
}

// Len reports how many sessions are currently tracked.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) sweep(interval time.Duration) {
	if interval <= 0 {
		interval = maxSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanupExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) cleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.expires) {
			delete(s.sessions, id)
		}
	}
}

// liveLocked returns the session if it has not expired yet.
func (s *MemoryStore) liveLocked(id string) (*memorySession, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().After(sess.expires) {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}

type memoryBag struct {
	store *MemoryStore
	id    string
}

func (b *memoryBag) Has(_ context.Context, key string) (bool, error) {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.liveLocked(b.id)
	if !ok {
		return false, nil
	}
	sess.expires = s.now().Add(s.ttl)
	_, has := sess.keys[key]
	return has, nil
}

func (b *memoryBag) Set(_ context.Context, key string) error {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.liveLocked(b.id)
	if !ok {
		sess = &memorySession{keys: make(map[string]struct{})}
		s.sessions[b.id] = sess
	}
	sess.keys[key] = struct{}{}
	sess.expires = s.now().Add(s.ttl)
	return nil
}
