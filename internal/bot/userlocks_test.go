package bot

import (
	"sync"
	"testing"
)

func TestUserLocksSerializePerUser(t *testing.T) {
	locks := newUserLocks()

	var mu sync.Mutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(1)
			defer unlock()

			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("Expected 50 increments, got %d", counter)
	}
}

func TestUserLocksIndependentUsers(t *testing.T) {
	locks := newUserLocks()

	unlock1 := locks.lock(1)
	defer unlock1()

	// A different user is not blocked while user 1 holds its lock
	done := make(chan struct{})
	go func() {
		unlock2 := locks.lock(2)
		unlock2()
		close(done)
	}()

	<-done
}

func TestUserLockReacquire(t *testing.T) {
	locks := newUserLocks()

	unlock := locks.lock(1)
	unlock()

	unlock = locks.lock(1)
	unlock()
}
