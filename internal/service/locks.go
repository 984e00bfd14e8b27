package service

import "sync"

// keyedLocks serializes mutating operations per workspace id. The dissolution
// sweep and request-triggered operations funnel through the same lock, so a
// concurrent sweep-dissolve and user dissolve cannot double-apply side
// effects. Entries are refcounted and removed when the last holder releases,
// keeping the map bounded by in-flight operations rather than by workspace
// count. A single process is assumed; coordinating multiple deployments would
// need a database-level lock instead.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*keyedLock)}
}

func (l *keyedLocks) Lock(key string) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyedLock{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *keyedLocks) Unlock(key string) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
	}
	l.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
