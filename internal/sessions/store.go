package sessions

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/raw-feed-planner/internal/planner"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu        sync.Mutex
	userID    uuid.UUID
	session   *planner.Session
	touchedAt time.Time
}

// Store хранит активные сессии редактирования планов в памяти процесса.
// Сессия принадлежит одному пользователю и вытесняется по TTL.
type Store struct {
	mu           sync.RWMutex
	entries      map[uuid.UUID]*entry
	ttl          time.Duration
	historyDepth int
	now          func() time.Time
}

// NewStore создает хранилище сессий с заданными TTL и глубиной истории.
func NewStore(ttl time.Duration, historyDepth int) *Store {
	return &Store{
		entries:      make(map[uuid.UUID]*entry),
		ttl:          ttl,
		historyDepth: historyDepth,
		now:          time.Now,
	}
}

// Create заводит новую сессию для пользователя и возвращает ее идентификатор.
func (s *Store) Create(userID uuid.UUID) (uuid.UUID, *planner.Session) {
	session := planner.NewSession(s.historyDepth)
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.entries[id] = &entry{
		userID:    userID,
		session:   session,
		touchedAt: s.now(),
	}

	return id, session
}

// With выполняет fn над сессией пользователя под ее собственной блокировкой.
func (s *Store) With(userID, sessionID uuid.UUID, fn func(*planner.Session) error) error {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || e.userID != userID {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if s.expired(e) {
		s.Delete(userID, sessionID)
		return ErrSessionNotFound
	}

	e.touchedAt = s.now()
	return fn(e.session)
}

// Delete закрывает сессию пользователя; отсутствующая сессия игнорируется.
func (s *Store) Delete(userID, sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[sessionID]; ok && e.userID == userID {
		delete(s.entries, sessionID)
	}
}

func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.touchedAt) > s.ttl
}

func (s *Store) sweepLocked() {
	if s.ttl <= 0 {
		return
	}

	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.entries {
		if e.touchedAt.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
