package storage

import (
	"sync"
)

// OperationType defines whether an operation is read or write
type OperationType int

const (
	// ReadOperation indicates an operation that only reads data.
	// Multiple read operations can proceed concurrently.
	ReadOperation OperationType = iota

	// WriteOperation indicates an operation that modifies data.
	// Write operations are exclusive.
	WriteOperation
)

// LockManager centralizes the read/write locking of a store's in-memory
// state, so every operation takes the right lock exactly once.
type LockManager struct {
	mu *sync.RWMutex
}

// NewLockManager creates a new lock manager instance
func NewLockManager() *LockManager {
	return &LockManager{
		mu: &sync.RWMutex{},
	}
}

// Execute runs fn holding a read lock for ReadOperation or the exclusive
// lock for WriteOperation. The lock is released when fn returns.
//
// Example:
//
//	err := lockManager.Execute(ReadOperation, func() error {
//	    // Safe to read data here
//	    return nil
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

// ExecuteWithResult is Execute for functions that also produce a value
func ExecuteWithResult[T any](lm *LockManager, opType OperationType, fn func() (T, error)) (T, error) {
	var result T
	err := lm.Execute(opType, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
