package state

import (
	"sync"
	"time"
)

// Manager хранит сессии пользователей; не более одной сессии на пользователя
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session // userID -> Session
	locks    map[int64]*userLock
	now      func() time.Time
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*userLock),
		now:      time.Now,
	}
}

// Lock захватывает блокировку пользователя и возвращает функцию освобождения.
// Сообщения одного пользователя обрабатываются строго по очереди, разных пользователей параллельно.
func (sm *Manager) Lock(userID int64) func() {
	sm.mu.Lock()
	l, ok := sm.locks[userID]
	if !ok {
		l = &userLock{}
		sm.locks[userID] = l
	}
	l.refs++
	sm.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		sm.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(sm.locks, userID)
		}
		sm.mu.Unlock()
	}
}

// Get возвращает сессию пользователя
func (sm *Manager) Get(userID int64) (*Session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[userID]
	return session, ok
}

// Put сохраняет сессию и обновляет время последней активности
func (sm *Manager) Put(session *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session.UpdatedAt = sm.now()
	sm.sessions[session.UserID] = session
}

// Delete удаляет сессию пользователя
func (sm *Manager) Delete(userID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, userID)
}

// Sweep удаляет сессии без активности дольше idle и возвращает их количество.
// Сессии пользователей, чьё сообщение сейчас обрабатывается (держат Lock), не трогаются.
func (sm *Manager) Sweep(idle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	deadline := sm.now().Add(-idle)
	removed := 0
	for userID, session := range sm.sessions {
		if _, busy := sm.locks[userID]; busy {
			continue
		}
		if session.UpdatedAt.Before(deadline) {
			delete(sm.sessions, userID)
			removed++
		}
	}
	return removed
}

// Len количество активных сессий
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.sessions)
}
