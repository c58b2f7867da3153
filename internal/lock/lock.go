// Package lock provides per-key mutual exclusion. Cart mutation and checkout
// for the same user must serialize against each other across the whole
// read-modify-write sequence, so both services share one Keyed instance.
package lock

import "sync"

// Keyed hands out one mutex per key. Mutexes are never discarded; the key
// space (user ids) is small and long-lived.
type Keyed struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[int]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use, and returns the
// matching unlock func.
func (k *Keyed) Lock(key int) func() {
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
