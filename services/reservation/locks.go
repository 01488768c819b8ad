package reservation

import "sync"

// keyedMutex serializes critical sections per key. The booking path
// locks on court+date so the availability check and the insert behave
// as one atomic step for that day, while bookings for other courts or
// days proceed concurrently.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func slotKey(courtID, date string) string {
	return courtID + "|" + date
}
