package session

import "sync"

// Locker serialises work per token. Idle tokens hold no memory.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*tokenLock
}

type tokenLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocker returns an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*tokenLock)}
}

// Lock blocks until token is free and returns the matching unlock func.
func (l *Locker) Lock(token string) func() {
	l.mu.Lock()
	tl, ok := l.locks[token]
	if !ok {
		tl = &tokenLock{}
		l.locks[token] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			tl.mu.Unlock()
			l.mu.Lock()
			tl.refs--
			if tl.refs == 0 {
				delete(l.locks, token)
			}
			l.mu.Unlock()
		})
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
