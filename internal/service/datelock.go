package service

import "sync"

// dateLocker hands out one mutex per date. Entries are dropped once no
// caller holds or waits on them, so the map stays bounded by in-flight dates.
type dateLocker struct {
	mu    sync.Mutex
	locks map[string]*dateLock
}

type dateLock struct {
	mu   sync.Mutex
	refs int
}

func newDateLocker() *dateLocker {
	return &dateLocker{locks: make(map[string]*dateLock)}
}

// Lock blocks until date is free and returns its unlock func.
func (l *dateLocker) Lock(date string) func() {
	l.mu.Lock()
	dl, ok := l.locks[date]
	if !ok {
		dl = &dateLock{}
		l.locks[date] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.mu.Lock()
	return func() {
		dl.mu.Unlock()
		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.locks, date)
		}
		l.mu.Unlock()
	}
}

func (l *dateLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
