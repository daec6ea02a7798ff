package concurrency

import (
	"fmt"
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// SlotLock returns the mutex guarding one save slot. Slot lifecycle
// operations and background saves for the same slot always serialize on
// this lock.
func (lm *LockManager) SlotLock(slotID int) *sync.Mutex {
	return lm.GetLock(fmt.Sprintf("slot:%d", slotID))
}
