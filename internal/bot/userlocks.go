package bot

import "sync"

// userLocks hands out one mutex per user so updates from the same user
// are handled strictly in order, while different users proceed in parallel.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the user's mutex and returns the unlock function
func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
